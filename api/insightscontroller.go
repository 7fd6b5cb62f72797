package api

import (
	"errors"
	"net/http"

	"gebo/analytics"
	"gebo/listings"
	"gebo/prediction"
	"gebo/types"

	"github.com/gin-gonic/gin"
)

// RegisterInsightRoutes registers revenue prediction and analytics endpoints.
func RegisterInsightRoutes(r *gin.Engine, store listings.Store, predictor *prediction.Predictor, svc *analytics.Service) {
	r.POST("/api/predict-revenue", handlePredictRevenue(store, predictor))

	g := r.Group("/api/analytics")
	g.GET("/:id/pricing", handlePricing(store, svc))
	g.GET("/:id/audience", handleAudience(store))
}

// handlePredictRevenue accepts raw metrics, or just a video_id to predict
// for an existing listing
func handlePredictRevenue(store listings.Store, predictor *prediction.Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RevenueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.VideoID != "" && req.Title == "" {
			v, err := store.Get(c.Request.Context(), req.VideoID)
			if err != nil {
				respondLookupError(c, err)
				return
			}
			req = types.RevenueRequestFor(v)
		}
		if req.Title == "" && req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title or video_id is required"})
			return
		}

		pred, err := predictor.Predict(c.Request.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, prediction.ErrInvalidMetrics) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, pred)
	}
}

func handlePricing(store listings.Store, svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondLookupError(c, err)
			return
		}

		insight, err := svc.Pricing(c.Request.Context(), v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, insight)
	}
}

func handleAudience(store listings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, analytics.Audience(v))
	}
}
