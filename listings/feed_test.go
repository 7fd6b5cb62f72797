package listings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gebo/types"

	"github.com/mmcdole/gofeed"
)

const channelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
 <title>Chain Smith</title>
 <author><name>chainsmith</name></author>
 <entry>
  <id>yt:video:abc123</id>
  <yt:videoId>abc123</yt:videoId>
  <title>Account Abstraction in 10 Minutes</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
  <published>2024-06-20T10:00:00+00:00</published>
  <media:group>
   <media:title>Account Abstraction in 10 Minutes</media:title>
   <media:thumbnail url="https://i.ytimg.com/vi/abc123/hqdefault.jpg" width="480" height="360"/>
   <media:description>ERC-4337 bundlers and paymasters explained.</media:description>
   <media:community>
    <media:starRating count="812" average="5.00" min="1" max="5"/>
    <media:statistics views="15400"/>
   </media:community>
  </media:group>
 </entry>
 <entry>
  <id>yt:video:nolink</id>
  <title>Entry without link</title>
 </entry>
</feed>`

func TestVideosFromFeed(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(channelFeed)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	videos := VideosFromFeed(feed)
	if len(videos) != 1 {
		t.Fatalf("len(videos) = %d; want 1", len(videos))
	}

	v := videos[0]
	if v.ID != types.GenerateID("https://www.youtube.com/watch?v=abc123") {
		t.Fatalf("ID = %q", v.ID)
	}
	if v.CreatorName != "chainsmith" {
		t.Fatalf("CreatorName = %q", v.CreatorName)
	}
	if v.ThumbnailURL != "https://i.ytimg.com/vi/abc123/hqdefault.jpg" {
		t.Fatalf("ThumbnailURL = %q", v.ThumbnailURL)
	}
	if v.Description != "ERC-4337 bundlers and paymasters explained." {
		t.Fatalf("Description = %q", v.Description)
	}
	if v.Views != 15400 || v.Likes != 812 {
		t.Fatalf("Views/Likes = %d/%d", v.Views, v.Likes)
	}
	if v.Category != defaultFeedCategory {
		t.Fatalf("Category = %q", v.Category)
	}
	if v.PublishedAt.Year() != 2024 {
		t.Fatalf("PublishedAt = %v", v.PublishedAt)
	}
	if VideosFromFeed(nil) != nil {
		t.Fatal("nil feed should yield nil")
	}
}

func TestImporterImport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(channelFeed))
	}))
	defer srv.Close()

	store := NewMockStore()
	n, err := NewImporter(store).Import(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d; want 1", n)
	}

	all, _ := store.All(context.Background())
	if len(all) != len(Catalog())+1 {
		t.Fatalf("store has %d videos; want %d", len(all), len(Catalog())+1)
	}
}

func TestImporterBadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := NewImporter(NewMockStore()).Import(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for failing feed")
	}
}
