package api

import (
	"errors"
	"net/http"

	"gebo/chains"
	"gebo/wallets"

	"github.com/gin-gonic/gin"
)

// RegisterWalletRoutes registers the wallet profile endpoint.
func RegisterWalletRoutes(r *gin.Engine, svc *wallets.Service) {
	r.GET("/api/wallets/:address", func(c *gin.Context) {
		var chainID int64
		if v := c.Query("chain_id"); v != "" {
			id, err := chains.ParseChainID(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			chainID = id
		}

		profile, err := svc.Profile(c.Request.Context(), c.Param("address"), chainID)
		if err != nil {
			if errors.Is(err, wallets.ErrInvalidAddress) || errors.Is(err, chains.ErrUnsupportedChain) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, profile)
	})
}
