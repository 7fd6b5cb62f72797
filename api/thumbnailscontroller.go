package api

import (
	"errors"
	"net/http"

	"gebo/thumbnails"

	"github.com/gin-gonic/gin"
)

// GenerateThumbnailRequest is the body of POST /api/thumbnails/generate
type GenerateThumbnailRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	NumImages int    `json:"num_images"`
}

// RegisterThumbnailRoutes registers AI thumbnail generation endpoints.
func RegisterThumbnailRoutes(r *gin.Engine, gen *thumbnails.Generator) {
	r.POST("/api/thumbnails/generate", func(c *gin.Context) {
		var req GenerateThumbnailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Blocks while the image job is polled; fallbacks still answer 200.
		result, err := gen.Generate(c.Request.Context(), req.Prompt, req.NumImages)
		if err != nil {
			if errors.Is(err, thumbnails.ErrEmptyPrompt) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	})
}
