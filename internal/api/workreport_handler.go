package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/service"
)

// ListWorkReports handles GET /api/work-reports?saha=&ay=
func (h *Handler) ListWorkReports(c *gin.Context) {
	reports, err := h.svc.WorkReports.List(c.Request.Context(), principal(c), c.Query("saha"), c.Query("ay"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reports), "raporlar": reports})
}

// DailyWorkReports handles GET /api/work-reports/daily?saha=&ay=
func (h *Handler) DailyWorkReports(c *gin.Context) {
	days, err := h.svc.WorkReports.Daily(c.Request.Context(), principal(c), c.Query("saha"), c.Query("ay"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gunluk": days})
}

// GetWorkReport handles GET /api/work-reports/:id
func (h *Handler) GetWorkReport(c *gin.Context) {
	report, err := h.svc.WorkReports.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CreateWorkReport handles POST /api/work-reports
func (h *Handler) CreateWorkReport(c *gin.Context) {
	var in service.WorkReportInput
	if !bind(c, &in) {
		return
	}

	report, err := h.svc.WorkReports.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// DeleteWorkReport handles DELETE /api/work-reports/:id
func (h *Handler) DeleteWorkReport(c *gin.Context) {
	if err := h.svc.WorkReports.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Rapor silindi"})
}
