package api

import (
	"errors"
	"net/http"
	"strconv"

	"gebo/config"
	"gebo/listings"
	"gebo/types"

	"github.com/gin-gonic/gin"
)

// RegisterVideoRoutes registers listing browse and search endpoints.
func RegisterVideoRoutes(r *gin.Engine, store listings.Store, rec *listings.Recommender) {
	g := r.Group("/api")
	g.GET("/videos", handleListVideos(store))
	g.GET("/videos/:id", handleGetVideo(store))
	g.GET("/videos/:id/related", handleRelatedVideos(rec))
	g.GET("/categories", handleCategories(store))
}

// parseListQuery reads ListQuery from query parameters
func parseListQuery(c *gin.Context) (types.ListQuery, error) {
	q := types.ListQuery{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Creator:  c.Query("creator"),
		Sort:     c.Query("sort"),
	}

	var err error
	if q.Limit, err = intParam(c, "limit", 0); err != nil {
		return q, err
	}
	if q.Offset, err = intParam(c, "offset", 0); err != nil {
		return q, err
	}
	if v := c.Query("minted"); v != "" {
		minted, err := strconv.ParseBool(v)
		if err != nil {
			return q, errors.New("minted must be true or false")
		}
		q.Minted = &minted
	}
	return listings.NormalizeQuery(q), nil
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

func handleListVideos(store listings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		videos, total, err := store.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list videos: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.VideoPage{
			Videos: videos,
			Total:  total,
			Limit:  q.Limit,
			Offset: q.Offset,
		})
	}
}

func handleGetVideo(store listings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func handleRelatedVideos(rec *listings.Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := intParam(c, "limit", config.DefaultRelatedCount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if n < 1 || n > config.MaxPageSize {
			n = config.DefaultRelatedCount
		}

		related, err := rec.Related(c.Request.Context(), c.Param("id"), n)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"video_id": c.Param("id"), "related": related})
	}
}

func handleCategories(store listings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := store.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load videos: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": listings.Categories(all)})
	}
}

// respondLookupError maps listing lookups to 404 or 500
func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, listings.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
