package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
)

// ListSites handles GET /api/sites
func (h *Handler) ListSites(c *gin.Context) {
	sites, err := h.svc.Sites.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(sites), "sahalar": sites})
}

// GetSite handles GET /api/sites/:id
func (h *Handler) GetSite(c *gin.Context) {
	site, err := h.svc.Sites.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// CreateSite handles POST /api/sites
func (h *Handler) CreateSite(c *gin.Context) {
	var in domain.Site
	if !bind(c, &in) {
		return
	}

	site, err := h.svc.Sites.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

// UpdateSite handles PUT /api/sites/:id
func (h *Handler) UpdateSite(c *gin.Context) {
	var in domain.Site
	if !bind(c, &in) {
		return
	}

	site, err := h.svc.Sites.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// DeleteSite handles DELETE /api/sites/:id
func (h *Handler) DeleteSite(c *gin.Context) {
	if err := h.svc.Sites.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Saha silindi"})
}
