package api

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ImportFeedRequest is the body of POST /api/feeds/import
type ImportFeedRequest struct {
	URL string `json:"url" binding:"required"`
}

// RegisterFeedRoutes registers channel feed import endpoints.
func RegisterFeedRoutes(r *gin.Engine, importer FeedImporter) {
	r.POST("/api/feeds/import", func(c *gin.Context) {
		var req ImportFeedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := url.Parse(req.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url must be an absolute http(s) URL"})
			return
		}

		n, err := importer.Import(c.Request.Context(), req.URL)
		if err != nil {
			log.Printf("Warning: feed import from %s failed: %v", req.URL, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to import feed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": req.URL, "imported": n})
	})
}
