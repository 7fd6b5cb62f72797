package config

import "time"

// Upload Constants
const (
	// MaxUploadBytes is the largest accepted upload (100MB)
	MaxUploadBytes = 100 << 20

	// SniffBytes is how much of an upload is read to detect its content type
	SniffBytes = 512

	// UploadPrefix is the object key prefix for stored uploads
	UploadPrefix = "uploads/"
)

// AllowedVideoTypes lists the accepted upload MIME types
var AllowedVideoTypes = map[string]bool{
	"video/mp4":        true,
	"video/webm":       true,
	"video/quicktime":  true,
	"video/x-matroska": true,
}

// AllowedVideoExtensions lists the accepted upload file extensions
var AllowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".mkv":  true,
}

// Thumbnail Generation Constants
const (
	// ThumbnailPollInterval is the wait between job status checks
	ThumbnailPollInterval = 2 * time.Second

	// ThumbnailMaxAttempts bounds the status polling loop (60s at the default interval)
	ThumbnailMaxAttempts = 30

	// ThumbnailMaxImages caps images per request
	ThumbnailMaxImages = 4

	// ThumbnailWidth and ThumbnailHeight are the requested image size (16:9)
	ThumbnailWidth  = 1280
	ThumbnailHeight = 720

	// ThumbnailCacheTTL is how long generated images are reused per prompt
	ThumbnailCacheTTL = 24 * time.Hour

	// FrameOffsetSeconds is where frame-grab thumbnails are taken from
	FrameOffsetSeconds = 1.0
)

// Listing Constants
const (
	// DefaultPageSize is used when no limit is given
	DefaultPageSize = 12

	// MaxPageSize caps the limit query parameter
	MaxPageSize = 50

	// DefaultRelatedCount is the number of related videos returned
	DefaultRelatedCount = 4
)

// Pricing Constants
const (
	// DefaultETHPriceUSD converts predicted revenue into a list price
	DefaultETHPriceUSD = 3000.0

	// CreatorRevenueShare is the share of predicted revenue priced into the NFT
	CreatorRevenueShare = 0.5

	// RevenueHorizonMonths scales a per-period prediction to a yearly figure
	RevenueHorizonMonths = 12

	// MinPriceETH and MaxPriceETH clamp suggested prices
	MinPriceETH = 0.001
	MaxPriceETH = 100.0
)

// HTTP Constants
const (
	// HTTPTimeout applies to every outbound API call
	HTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second
)

// Kafka Constants
const (
	// DefaultMintTopic carries MintEvent messages
	DefaultMintTopic = "gebo-mint-events"

	// DefaultConsumerGroup is the mint indexer's consumer group
	DefaultConsumerGroup = "gebo-mint-indexer"
)
