package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Video is a single marketplace listing as shown in the browse and detail views
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Creator         string    `json:"creator"`
	CreatorName     string    `json:"creator_name"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Comments        int64     `json:"comments"`
	Shares          int64     `json:"shares"`
	PriceETH        float64   `json:"price_eth"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	VideoURL        string    `json:"video_url"`
	PublishedAt     time.Time `json:"published_at"`
	Minted          bool      `json:"minted"`
	TokenID         string    `json:"token_id,omitempty"`
	ChainID         int64     `json:"chain_id,omitempty"`
}

// EngagementScore weighs interactions against reach. Used for trending order.
func (v Video) EngagementScore() float64 {
	views := v.Views
	if views < 1 {
		views = 1
	}
	return float64(v.Likes+2*v.Comments+3*v.Shares) / float64(views)
}

// Sort orders accepted by ListQuery
const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortTrending  = "trending"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ListQuery holds browse/search parameters
type ListQuery struct {
	Query    string
	Category string
	Creator  string
	Sort     string
	// Minted filters by mint status when non-nil
	Minted *bool
	Limit  int
	Offset int
}

// VideoPage is the paginated response for list/search
type VideoPage struct {
	Videos []Video `json:"videos"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// GenerateID creates a stable short ID from a URL or other unique string
func GenerateID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:16]
}
