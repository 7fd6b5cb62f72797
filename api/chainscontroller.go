package api

import (
	"errors"
	"net/http"

	"gebo/chains"

	"github.com/gin-gonic/gin"
)

// RegisterChainRoutes registers chain configuration endpoints used by the
// wallet to add or switch networks.
func RegisterChainRoutes(r *gin.Engine) {
	g := r.Group("/api/chains")
	g.GET("", handleListChains)
	g.GET("/:id", withChainID(func(c *gin.Context, id int64) {
		chain, err := chains.Lookup(id)
		if err != nil {
			respondChainError(c, err)
			return
		}
		c.JSON(http.StatusOK, chain)
	}))
	g.GET("/:id/add-params", withChainID(func(c *gin.Context, id int64) {
		params, err := chains.AddParams(id)
		if err != nil {
			respondChainError(c, err)
			return
		}
		c.JSON(http.StatusOK, params)
	}))
	g.GET("/:id/switch-params", withChainID(func(c *gin.Context, id int64) {
		params, err := chains.SwitchParams(id)
		if err != nil {
			respondChainError(c, err)
			return
		}
		c.JSON(http.StatusOK, params)
	}))
	g.GET("/:id/contracts", withChainID(func(c *gin.Context, id int64) {
		contracts, err := chains.ContractsFor(id)
		if err != nil {
			respondChainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"chain_id":      contracts.ChainID,
			"video_nft":     contracts.VideoNFT,
			"creator_token": contracts.CreatorToken,
			"deployed":      contracts.Deployed(),
		})
	}))
}

func handleListChains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": chains.All()})
}

// withChainID parses the :id parameter as decimal or 0x-hex
func withChainID(h func(c *gin.Context, id int64)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := chains.ParseChainID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h(c, id)
	}
}

func respondChainError(c *gin.Context, err error) {
	if errors.Is(err, chains.ErrUnsupportedChain) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
