package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
)

type adjustRequest struct {
	Miktar float64 `json:"miktar"`
}

// ListStock handles GET /api/stock?saha=&kritik=true
func (h *Handler) ListStock(c *gin.Context) {
	items, err := h.svc.Stock.List(c.Request.Context(), principal(c), c.Query("saha"), getBoolParam(c, "kritik"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "stoklar": items})
}

// GetStock handles GET /api/stock/:id
func (h *Handler) GetStock(c *gin.Context) {
	item, err := h.svc.Stock.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateStock handles POST /api/stock
func (h *Handler) CreateStock(c *gin.Context) {
	var in domain.StockItem
	if !bind(c, &in) {
		return
	}

	item, err := h.svc.Stock.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateStock handles PUT /api/stock/:id
func (h *Handler) UpdateStock(c *gin.Context) {
	var in domain.StockItem
	if !bind(c, &in) {
		return
	}

	item, err := h.svc.Stock.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AdjustStock handles POST /api/stock/:id/adjust with a signed amount.
func (h *Handler) AdjustStock(c *gin.Context) {
	var req adjustRequest
	if !bind(c, &req) {
		return
	}

	item, err := h.svc.Stock.Adjust(c.Request.Context(), principal(c), c.Param("id"), req.Miktar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteStock handles DELETE /api/stock/:id
func (h *Handler) DeleteStock(c *gin.Context) {
	if err := h.svc.Stock.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Stok kaydı silindi"})
}
