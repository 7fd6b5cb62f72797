package types

// Result sources
const (
	SourceAPI      = "api"
	SourceFallback = "fallback"
	SourceCache    = "cache"
	SourceMock     = "mock"
)

// RevenueRequest carries the content and metrics sent to the prediction service
type RevenueRequest struct {
	VideoID         string   `json:"video_id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
	Views           int64    `json:"views"`
	Likes           int64    `json:"likes"`
	Comments        int64    `json:"comments"`
	Shares          int64    `json:"shares"`
}

// RevenueRequestFor builds a prediction request from a listing
func RevenueRequestFor(v Video) RevenueRequest {
	return RevenueRequest{
		VideoID:         v.ID,
		Title:           v.Title,
		Description:     v.Description,
		Category:        v.Category,
		Tags:            v.Tags,
		DurationSeconds: v.DurationSeconds,
		Views:           v.Views,
		Likes:           v.Likes,
		Comments:        v.Comments,
		Shares:          v.Shares,
	}
}

// RevenuePrediction is the ad-revenue estimate for a piece of content
type RevenuePrediction struct {
	PredictedRevenueUSD float64 `json:"predicted_revenue_usd"`
	LowUSD              float64 `json:"low_usd"`
	HighUSD             float64 `json:"high_usd"`
	RPM                 float64 `json:"rpm,omitempty"`
	EngagementRate      float64 `json:"engagement_rate"`
	Confidence          float64 `json:"confidence"`
	Source              string  `json:"source"`
}

// PricingInsight suggests an NFT list price for a video
type PricingInsight struct {
	VideoID             string  `json:"video_id"`
	SuggestedPriceETH   float64 `json:"suggested_price_eth"`
	MinPriceETH         float64 `json:"min_price_eth"`
	MaxPriceETH         float64 `json:"max_price_eth"`
	PredictedRevenueUSD float64 `json:"predicted_revenue_usd"`
	Confidence          float64 `json:"confidence"`
	Source              string  `json:"source"`
}

// AudienceInsight describes who watches a video
type AudienceInsight struct {
	VideoID            string   `json:"video_id"`
	EngagementRate     float64  `json:"engagement_rate"`
	PrimaryDemographic string   `json:"primary_demographic"`
	TopRegions         []string `json:"top_regions"`
	PeakHours          []int    `json:"peak_hours"`
	RetentionEstimate  float64  `json:"retention_estimate"`
	Source             string   `json:"source"`
}

// ThumbnailResult is the outcome of an image-generation job
type ThumbnailResult struct {
	JobID     string   `json:"job_id,omitempty"`
	Prompt    string   `json:"prompt"`
	ImageURLs []string `json:"image_urls"`
	Status    string   `json:"status"`
	Source    string   `json:"source"`
}
