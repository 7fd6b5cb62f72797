package listings

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gebo/types"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

const defaultFeedCategory = "entertainment"

// Importer pulls videos from creator channel feeds (RSS/Atom, including
// YouTube channel feeds) into a Store
type Importer struct {
	store  Store
	parser *gofeed.Parser
}

// NewImporter creates an Importer writing into store
func NewImporter(store Store) *Importer {
	return &Importer{store: store, parser: gofeed.NewParser()}
}

// Import fetches feedURL and upserts every entry. It returns the number of
// listings written.
func (im *Importer) Import(ctx context.Context, feedURL string) (int, error) {
	feed, err := im.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch feed: %w", err)
	}

	videos := VideosFromFeed(feed)
	written := 0
	for _, v := range videos {
		if err := im.store.Upsert(ctx, v); err != nil {
			log.Printf("Warning: failed to store feed entry %s: %v", v.ID, err)
			continue
		}
		written++
	}
	log.Printf("Imported %d/%d entries from %s", written, len(videos), feedURL)
	return written, nil
}

// VideosFromFeed maps feed entries to listings. Entries without a link are skipped.
func VideosFromFeed(feed *gofeed.Feed) []types.Video {
	if feed == nil {
		return nil
	}

	creatorName := feed.Title
	if feed.Author != nil && feed.Author.Name != "" {
		creatorName = feed.Author.Name
	}
	feedCategory := defaultFeedCategory
	if len(feed.Categories) > 0 {
		feedCategory = strings.ToLower(feed.Categories[0])
	}

	videos := make([]types.Video, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		v := types.Video{
			ID:          types.GenerateID(item.Link),
			Title:       item.Title,
			Description: item.Description,
			CreatorName: creatorName,
			Category:    feedCategory,
			VideoURL:    item.Link,
			PublishedAt: time.Now().UTC(),
		}

		if item.PublishedParsed != nil {
			v.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			v.PublishedAt = *item.UpdatedParsed
		}
		if item.Author != nil && item.Author.Name != "" {
			v.CreatorName = item.Author.Name
		}
		if len(item.Categories) > 0 {
			v.Category = strings.ToLower(item.Categories[0])
			v.Tags = lowerAll(item.Categories)
		}
		if item.Image != nil {
			v.ThumbnailURL = item.Image.URL
		}

		applyMediaGroup(&v, item.Extensions)
		videos = append(videos, v)
	}
	return videos
}

// applyMediaGroup reads Media RSS fields (media:group/media:thumbnail,
// media:description, media:community/media:statistics) when present
func applyMediaGroup(v *types.Video, exts ext.Extensions) {
	media, ok := exts["media"]
	if !ok {
		return
	}

	nodes := media["group"]
	if len(nodes) == 0 {
		// RSS feeds often put media elements directly on the item
		nodes = []ext.Extension{{Children: media}}
	}
	group := nodes[0].Children

	if v.ThumbnailURL == "" {
		if thumbs := group["thumbnail"]; len(thumbs) > 0 {
			v.ThumbnailURL = thumbs[0].Attrs["url"]
		}
	}
	if v.Description == "" {
		if desc := group["description"]; len(desc) > 0 {
			v.Description = strings.TrimSpace(desc[0].Value)
		}
	}
	if content := group["content"]; len(content) > 0 {
		if d, err := strconv.Atoi(content[0].Attrs["duration"]); err == nil {
			v.DurationSeconds = d
		}
	}
	if community := group["community"]; len(community) > 0 {
		if stats := community[0].Children["statistics"]; len(stats) > 0 {
			if views, err := strconv.ParseInt(stats[0].Attrs["views"], 10, 64); err == nil {
				v.Views = views
			}
		}
		if rating := community[0].Children["starRating"]; len(rating) > 0 {
			if likes, err := strconv.ParseInt(rating[0].Attrs["count"], 10, 64); err == nil {
				v.Likes = likes
			}
		}
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
