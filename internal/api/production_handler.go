package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/service"
)

// CreateProduction handles POST /api/production
func (h *Handler) CreateProduction(c *gin.Context) {
	var in service.ProductionInput
	if !bind(c, &in) {
		return
	}

	record, err := h.svc.Production.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListProduction handles GET /api/plants/:id/production?donem=&deger=
func (h *Handler) ListProduction(c *gin.Context) {
	w, ok := windowParam(c)
	if !ok {
		return
	}

	records, err := h.svc.Production.List(c.Request.Context(), principal(c), c.Param("id"), w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "donem": w, "kayitlar": records})
}

// DeleteProduction handles DELETE /api/production/:id
func (h *Handler) DeleteProduction(c *gin.Context) {
	if err := h.svc.Production.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Üretim kaydı silindi"})
}

// ProductionSummary handles GET /api/plants/:id/summary?donem=&deger=
func (h *Handler) ProductionSummary(c *gin.Context) {
	w, ok := windowParam(c)
	if !ok {
		return
	}

	summary, err := h.svc.Production.Summary(c.Request.Context(), principal(c), c.Param("id"), w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ProductionCharts handles GET /api/plants/:id/charts?yil=2024&ay=6.
// Year and month default to the current ones.
func (h *Handler) ProductionCharts(c *gin.Context) {
	now := time.Now()
	year := getIntParam(c, "yil", now.Year())
	month := int(now.Month())
	if v := c.Query("ay"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "Geçersiz ay")
			return
		}
		month = m
	}

	charts, err := h.svc.Production.Charts(c.Request.Context(), principal(c), c.Param("id"), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts)
}

// ExportProduction handles GET /api/plants/:id/production/csv
func (h *Handler) ExportProduction(c *gin.Context) {
	w, ok := windowParam(c)
	if !ok {
		return
	}

	data, name, err := h.svc.Production.ExportCSV(c.Request.Context(), principal(c), c.Param("id"), w)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "text/csv; charset=utf-8", name, data)
}

// MirrorProduction handles GET /api/plants/:id/mirror. It reads the
// daily yields back from the time-series store.
func (h *Handler) MirrorProduction(c *gin.Context) {
	w, ok := windowParam(c)
	if !ok {
		return
	}

	totals, err := h.svc.Production.MirrorTotals(c.Request.Context(), principal(c), c.Param("id"), w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(totals), "gunluk": totals})
}
