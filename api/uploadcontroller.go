package api

import (
	"errors"
	"log"
	"net/http"

	"gebo/upload"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

// RegisterUploadRoutes registers the video upload endpoint.
func RegisterUploadRoutes(r *gin.Engine, svc *upload.Service) {
	r.POST("/api/upload", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, svc.MaxBytes()+multipartOverhead)

		header, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": svc.TooLarge().Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
			return
		}
		if err := svc.CheckSize(header.Size); err != nil {
			respondUploadError(c, err)
			return
		}

		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file: " + err.Error()})
			return
		}
		defer f.Close()

		result, err := svc.Accept(c.Request.Context(), f, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			respondUploadError(c, err)
			return
		}

		log.Printf("Accepted upload %s (%s, %d bytes, stored=%t)", result.CID, result.ContentType, result.Size, result.Stored)
		c.JSON(http.StatusOK, result)
	})
}

func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, upload.ErrUnsupportedType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, upload.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
