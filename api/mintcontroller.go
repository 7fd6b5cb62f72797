package api

import (
	"errors"
	"net/http"

	"gebo/chains"
	"gebo/listings"
	"gebo/mint"
	"gebo/types"

	"github.com/gin-gonic/gin"
)

// RegisterMintRoutes registers NFT metadata and mint tracking endpoints.
func RegisterMintRoutes(r *gin.Engine, svc *mint.Service) {
	r.GET("/api/nft/metadata/:id", func(c *gin.Context) {
		m, err := svc.Metadata(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	})

	r.POST("/api/mint", func(c *gin.Context) {
		var req types.MintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := svc.RecordMint(c.Request.Context(), req)
		if err != nil {
			respondMintError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	})

	r.GET("/api/mints", func(c *gin.Context) {
		owner := c.Query("owner")
		recs, err := svc.ByOwner(c.Request.Context(), owner)
		if err != nil {
			respondMintError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"owner": chains.NormalizeAddress(owner), "mints": recs})
	})
}

func respondMintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
	case errors.Is(err, mint.ErrAlreadyMinted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, chains.ErrUnsupportedChain),
		errors.Is(err, mint.ErrContractNotDeployed),
		errors.Is(err, mint.ErrInvalidOwner),
		errors.Is(err, mint.ErrInvalidTxHash),
		errors.Is(err, mint.ErrInvalidTokenID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
