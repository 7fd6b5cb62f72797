package api

import (
	"context"

	"gebo/analytics"
	"gebo/listings"
	"gebo/mint"
	"gebo/prediction"
	"gebo/thumbnails"
	"gebo/upload"
	"gebo/wallets"

	"github.com/gin-gonic/gin"
)

// FeedImporter imports listings from a channel feed
type FeedImporter interface {
	Import(ctx context.Context, feedURL string) (int, error)
}

// Deps are the services the routes call into
type Deps struct {
	Store       listings.Store
	Recommender *listings.Recommender
	Feeds       FeedImporter
	Thumbnails  *thumbnails.Generator
	Predictor   *prediction.Predictor
	Analytics   *analytics.Service
	Uploads     *upload.Service
	Mints       *mint.Service
	Wallets     *wallets.Service
	// Integrations reports which optional backends are enabled
	Integrations map[string]bool
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// a 100MB upload must not be held in memory
	r.MaxMultipartMemory = 8 << 20

	RegisterHealthRoutes(r, d.Integrations)
	RegisterVideoRoutes(r, d.Store, d.Recommender)
	RegisterThumbnailRoutes(r, d.Thumbnails)
	RegisterInsightRoutes(r, d.Store, d.Predictor, d.Analytics)
	RegisterUploadRoutes(r, d.Uploads)
	RegisterChainRoutes(r)
	RegisterMintRoutes(r, d.Mints)
	RegisterWalletRoutes(r, d.Wallets)
	RegisterFeedRoutes(r, d.Feeds)
	return r
}
