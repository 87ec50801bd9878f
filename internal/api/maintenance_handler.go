package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/service"
)

func maintenanceQuery(c *gin.Context) service.MaintenanceQuery {
	return service.MaintenanceQuery{
		Kind:   domain.MaintenanceKind(c.Query("tur")),
		SahaID: c.Query("saha"),
		Month:  c.Query("ay"),
		Search: c.Query("ara"),
	}
}

// ListMaintenance handles GET /api/maintenance?tur=&saha=&ay=&ara=
func (h *Handler) ListMaintenance(c *gin.Context) {
	items, err := h.svc.Maintenance.List(c.Request.Context(), principal(c), maintenanceQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "bakimlar": items})
}

// MaintenanceStats handles GET /api/maintenance/stats
func (h *Handler) MaintenanceStats(c *gin.Context) {
	stats, err := h.svc.Maintenance.Stats(c.Request.Context(), principal(c), maintenanceQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMaintenance handles GET /api/maintenance/:tur/:id
func (h *Handler) GetMaintenance(c *gin.Context) {
	item, err := h.svc.Maintenance.Get(c.Request.Context(), principal(c), domain.MaintenanceKind(c.Param("tur")), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMaintenance handles POST /api/maintenance
func (h *Handler) CreateMaintenance(c *gin.Context) {
	var in service.MaintenanceInput
	if !bind(c, &in) {
		return
	}

	item, err := h.svc.Maintenance.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteMaintenance handles DELETE /api/maintenance/:tur/:id
func (h *Handler) DeleteMaintenance(c *gin.Context) {
	err := h.svc.Maintenance.Delete(c.Request.Context(), principal(c), domain.MaintenanceKind(c.Param("tur")), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Bakım kaydı silindi"})
}

// ExportMaintenancePDF handles GET /api/maintenance/export/pdf
func (h *Handler) ExportMaintenancePDF(c *gin.Context) {
	data, name, err := h.svc.Maintenance.ExportPDF(c.Request.Context(), principal(c), maintenanceQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/pdf", name, data)
}
