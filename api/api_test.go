package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gebo/analytics"
	"gebo/listings"
	"gebo/mint"
	"gebo/prediction"
	"gebo/thumbnails"
	"gebo/types"
	"gebo/upload"
	"gebo/wallets"

	"github.com/gin-gonic/gin"
)

const (
	testOwner  = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	testTxHash = "0x8a3f1c44b0e2f0b0c5a4c66f1d2a5b9e7c3d4e5f60718293a4b5c6d7e8f90a1b"
)

type stubFeeds struct {
	n   int
	err error
}

func (s stubFeeds) Import(context.Context, string) (int, error) { return s.n, s.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(feeds FeedImporter) *gin.Engine {
	store := listings.NewMockStore()
	predictor := prediction.NewPredictor("", "")
	mints := mint.NewService(store, mint.NewMemoryRegistry(), nil, "https://gebo.test")
	if feeds == nil {
		feeds = stubFeeds{}
	}
	return NewRouter(Deps{
		Store:        store,
		Recommender:  listings.NewRecommender(store, nil),
		Feeds:        feeds,
		Thumbnails:   thumbnails.NewGenerator("", ""),
		Predictor:    predictor,
		Analytics:    analytics.NewService(predictor, 0),
		Uploads:      upload.NewService(nil, nil, upload.WithMaxBytes(1024)),
		Mints:        mints,
		Wallets:      wallets.NewService(mints, store),
		Integrations: map[string]bool{"redis": false},
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestStatusCodes(t *testing.T) {
	r := newTestRouter(nil)
	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"health", http.MethodGet, "/api/health", nil, http.StatusOK},
		{"list", http.MethodGet, "/api/videos", nil, http.StatusOK},
		{"bad limit", http.MethodGet, "/api/videos?limit=abc", nil, http.StatusBadRequest},
		{"bad minted", http.MethodGet, "/api/videos?minted=maybe", nil, http.StatusBadRequest},
		{"get video", http.MethodGet, "/api/videos/vid-001", nil, http.StatusOK},
		{"missing video", http.MethodGet, "/api/videos/vid-999", nil, http.StatusNotFound},
		{"missing related", http.MethodGet, "/api/videos/vid-999/related", nil, http.StatusNotFound},
		{"categories", http.MethodGet, "/api/categories", nil, http.StatusOK},
		{"thumbnail no prompt", http.MethodPost, "/api/thumbnails/generate", map[string]any{"num_images": 2}, http.StatusBadRequest},
		{"thumbnail blank prompt", http.MethodPost, "/api/thumbnails/generate", map[string]any{"prompt": "   "}, http.StatusBadRequest},
		{"predict empty", http.MethodPost, "/api/predict-revenue", map[string]any{}, http.StatusBadRequest},
		{"predict negative", http.MethodPost, "/api/predict-revenue", map[string]any{"title": "t", "views": -5}, http.StatusBadRequest},
		{"predict bad json", http.MethodPost, "/api/predict-revenue", "{", http.StatusBadRequest},
		{"predict unknown video", http.MethodPost, "/api/predict-revenue", map[string]any{"video_id": "vid-999"}, http.StatusNotFound},
		{"pricing", http.MethodGet, "/api/analytics/vid-001/pricing", nil, http.StatusOK},
		{"pricing missing", http.MethodGet, "/api/analytics/nope/pricing", nil, http.StatusNotFound},
		{"audience", http.MethodGet, "/api/analytics/vid-002/audience", nil, http.StatusOK},
		{"chains", http.MethodGet, "/api/chains", nil, http.StatusOK},
		{"chain hex", http.MethodGet, "/api/chains/0x89", nil, http.StatusOK},
		{"chain unsupported", http.MethodGet, "/api/chains/56", nil, http.StatusNotFound},
		{"chain garbage", http.MethodGet, "/api/chains/abc", nil, http.StatusBadRequest},
		{"switch unsupported", http.MethodGet, "/api/chains/56/switch-params", nil, http.StatusNotFound},
		{"metadata missing", http.MethodGet, "/api/nft/metadata/vid-999", nil, http.StatusNotFound},
		{"mints bad owner", http.MethodGet, "/api/mints?owner=bob", nil, http.StatusBadRequest},
		{"wallet bad address", http.MethodGet, "/api/wallets/bob", nil, http.StatusBadRequest},
		{"wallet bad chain", http.MethodGet, "/api/wallets/" + testOwner + "?chain_id=xyz", nil, http.StatusBadRequest},
		{"feed no url", http.MethodPost, "/api/feeds/import", map[string]any{}, http.StatusBadRequest},
		{"feed relative url", http.MethodPost, "/api/feeds/import", map[string]any{"url": "/feeds/videos.xml"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d: %s", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestListVideos(t *testing.T) {
	r := newTestRouter(nil)

	page := decode[types.VideoPage](t, do(t, r, http.MethodGet, "/api/videos?limit=5", nil))
	if page.Total != 12 || len(page.Videos) != 5 || page.Limit != 5 {
		t.Errorf("page = total %d, len %d, limit %d", page.Total, len(page.Videos), page.Limit)
	}

	page = decode[types.VideoPage](t, do(t, r, http.MethodGet, "/api/videos?category=Gaming&sort=popular", nil))
	if page.Total == 0 {
		t.Fatal("expected gaming videos")
	}
	for i, v := range page.Videos {
		if v.Category != "gaming" {
			t.Errorf("video %s has category %s", v.ID, v.Category)
		}
		if i > 0 && v.Views > page.Videos[i-1].Views {
			t.Errorf("popular sort out of order at %d", i)
		}
	}
}

func TestRelatedVideos(t *testing.T) {
	r := newTestRouter(nil)
	body := decode[struct {
		VideoID string        `json:"video_id"`
		Related []types.Video `json:"related"`
	}](t, do(t, r, http.MethodGet, "/api/videos/vid-003/related?limit=3", nil))

	if body.VideoID != "vid-003" || len(body.Related) != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	for _, v := range body.Related {
		if v.ID == "vid-003" {
			t.Error("related list contains the video itself")
		}
	}
}

func TestThumbnailFallback(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, http.MethodPost, "/api/thumbnails/generate", map[string]any{"prompt": "cyberpunk skyline", "num_images": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	res := decode[types.ThumbnailResult](t, w)
	if res.Source != types.SourceFallback || len(res.ImageURLs) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestPredictRevenue(t *testing.T) {
	r := newTestRouter(nil)

	w := do(t, r, http.MethodPost, "/api/predict-revenue", map[string]any{
		"title": "Rollups explained", "category": "tech", "duration_seconds": 300,
		"views": 10000, "likes": 500, "comments": 100, "shares": 50,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	pred := decode[types.RevenuePrediction](t, w)
	if pred.PredictedRevenueUSD != 52.65 || pred.Source != types.SourceFallback {
		t.Errorf("unexpected prediction: %+v", pred)
	}

	byID := decode[types.RevenuePrediction](t, do(t, r, http.MethodPost, "/api/predict-revenue", map[string]any{"video_id": "vid-001"}))
	if byID.PredictedRevenueUSD <= 0 {
		t.Errorf("expected a positive prediction for vid-001: %+v", byID)
	}
}

func TestInsights(t *testing.T) {
	r := newTestRouter(nil)

	pricing := decode[types.PricingInsight](t, do(t, r, http.MethodGet, "/api/analytics/vid-001/pricing", nil))
	if pricing.VideoID != "vid-001" || pricing.SuggestedPriceETH < pricing.MinPriceETH || pricing.SuggestedPriceETH > pricing.MaxPriceETH {
		t.Errorf("unexpected pricing: %+v", pricing)
	}

	audience := decode[types.AudienceInsight](t, do(t, r, http.MethodGet, "/api/analytics/vid-002/audience", nil))
	if audience.Source != types.SourceMock || audience.PrimaryDemographic == "" {
		t.Errorf("unexpected audience: %+v", audience)
	}
}

func multipartUpload(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	r := newTestRouter(nil)
	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isomfake-video-bytes")...)

	tests := []struct {
		name    string
		field   string
		file    string
		content []byte
		want    int
	}{
		{name: "accepted", field: "file", file: "clip.mp4", content: mp4, want: http.StatusOK},
		{name: "wrong type", field: "file", file: "notes.txt", content: []byte("hello"), want: http.StatusUnsupportedMediaType},
		{name: "too large", field: "file", file: "big.mp4", content: append(mp4, make([]byte, 2048)...), want: http.StatusRequestEntityTooLarge},
		{name: "empty", field: "file", file: "clip.mp4", content: nil, want: http.StatusBadRequest},
		{name: "wrong field", field: "video", file: "clip.mp4", content: mp4, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartUpload(t, tt.field, tt.file, tt.content))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusRequestEntityTooLarge && !strings.Contains(w.Body.String(), "1024 bytes") {
				t.Errorf("413 body does not name the limit: %s", w.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}
			res := decode[types.UploadResult](t, w)
			if !strings.HasPrefix(res.CID, "Qm") || res.CID != upload.ContentID(mp4) || res.ContentType != "video/mp4" {
				t.Errorf("unexpected upload result: %+v", res)
			}
		})
	}
}

func TestChainParams(t *testing.T) {
	r := newTestRouter(nil)

	list := decode[struct {
		Chains []struct {
			ID int64 `json:"id"`
		} `json:"chains"`
	}](t, do(t, r, http.MethodGet, "/api/chains", nil))
	if len(list.Chains) != 5 {
		t.Errorf("chains = %d, want 5", len(list.Chains))
	}

	add := decode[map[string]any](t, do(t, r, http.MethodGet, "/api/chains/137/add-params", nil))
	if add["chainId"] != "0x89" || add["chainName"] != "Polygon Mainnet" {
		t.Errorf("add params = %v", add)
	}

	sw := decode[map[string]string](t, do(t, r, http.MethodGet, "/api/chains/80002/switch-params", nil))
	if sw["chainId"] != "0x13882" {
		t.Errorf("switch params = %v", sw)
	}

	local := decode[map[string]any](t, do(t, r, http.MethodGet, "/api/chains/31337/contracts", nil))
	if local["deployed"] != true {
		t.Errorf("hardhat contracts = %v", local)
	}
	polygon := decode[map[string]any](t, do(t, r, http.MethodGet, "/api/chains/137/contracts", nil))
	if polygon["deployed"] != false {
		t.Errorf("polygon contracts = %v", polygon)
	}
}

func TestMintFlow(t *testing.T) {
	r := newTestRouter(nil)
	req := map[string]any{"video_id": "vid-004", "chain_id": 31337, "owner": testOwner, "tx_hash": testTxHash, "token_id": "1"}

	w := do(t, r, http.MethodPost, "/api/mint", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("mint status = %d: %s", w.Code, w.Body.String())
	}
	rec := decode[types.MintRecord](t, w)
	if rec.VideoID != "vid-004" || rec.Status != types.MintConfirmed {
		t.Errorf("unexpected record: %+v", rec)
	}

	if w := do(t, r, http.MethodPost, "/api/mint", req); w.Code != http.StatusConflict {
		t.Errorf("second mint = %d, want 409", w.Code)
	}

	v := decode[types.Video](t, do(t, r, http.MethodGet, "/api/videos/vid-004", nil))
	if !v.Minted || v.TokenID != "1" {
		t.Errorf("listing not minted: %+v", v)
	}

	owned := decode[struct {
		Mints []types.MintRecord `json:"mints"`
	}](t, do(t, r, http.MethodGet, "/api/mints?owner="+testOwner, nil))
	if len(owned.Mints) != 1 || owned.Mints[0].ID != rec.ID {
		t.Errorf("mints by owner = %+v", owned.Mints)
	}

	profile := decode[types.WalletProfile](t, do(t, r, http.MethodGet, "/api/wallets/"+testOwner, nil))
	if len(profile.OwnedTokens) != 1 {
		t.Errorf("wallet profile = %+v", profile)
	}

	meta := decode[mint.Metadata](t, do(t, r, http.MethodGet, "/api/nft/metadata/vid-004", nil))
	if meta.Name != v.Title || meta.AnimationURL != v.VideoURL {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestMintRejects(t *testing.T) {
	r := newTestRouter(nil)
	base := func() map[string]any {
		return map[string]any{"video_id": "vid-005", "chain_id": 31337, "owner": testOwner, "tx_hash": testTxHash}
	}
	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   int
	}{
		{"missing tx", func(m map[string]any) { delete(m, "tx_hash") }, http.StatusBadRequest},
		{"unsupported chain", func(m map[string]any) { m["chain_id"] = 56 }, http.StatusBadRequest},
		{"not deployed", func(m map[string]any) { m["chain_id"] = 137 }, http.StatusBadRequest},
		{"bad owner", func(m map[string]any) { m["owner"] = "0xabc" }, http.StatusBadRequest},
		{"unknown video", func(m map[string]any) { m["video_id"] = "vid-404" }, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			tt.mutate(body)
			if w := do(t, r, http.MethodPost, "/api/mint", body); w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestWalletProfile(t *testing.T) {
	r := newTestRouter(nil)
	w := do(t, r, http.MethodGet, "/api/wallets/0x70997970C51812dc3A010C7d01b50e0d17dc79C8?chain_id=0x7a69", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	p := decode[types.WalletProfile](t, w)
	if p.DisplayName != "chainsmith" || p.ChainID != 31337 || len(p.CreatedVideos) == 0 {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestFeedImport(t *testing.T) {
	ok := newTestRouter(stubFeeds{n: 3})
	w := do(t, ok, http.MethodPost, "/api/feeds/import", map[string]any{"url": "https://www.youtube.com/feeds/videos.xml?channel_id=abc"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := decode[map[string]any](t, w); got["imported"] != float64(3) {
		t.Errorf("body = %v", got)
	}

	failing := newTestRouter(stubFeeds{err: errors.New("404 Not Found")})
	w = do(t, failing, http.MethodPost, "/api/feeds/import", map[string]any{"url": "https://example.com/feed.xml"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}
