package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "edeon-enerji",
	})
}

// MirrorStats handles GET /api/system/mirror
func (h *Handler) MirrorStats(c *gin.Context) {
	stats := h.svc.MirrorStats()
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "stats": stats})
}

// CacheStats handles GET /api/system/cache
func (h *Handler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dashboard_cache": h.svc.CacheStats()})
}
