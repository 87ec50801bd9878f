package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/service"
)

type commentRequest struct {
	Mesaj string `json:"mesaj"`
}

// faultQuery reads the list filters shared by the list, stats and
// export endpoints.
func faultQuery(c *gin.Context) service.FaultQuery {
	return service.FaultQuery{
		Saha:      c.Query("saha"),
		Durum:     domain.FaultStatus(c.Query("durum")),
		Oncelik:   domain.Priority(c.Query("oncelik")),
		Preset:    service.DatePreset(c.DefaultQuery("tarih", string(service.PresetAll))),
		From:      c.Query("baslangic"),
		To:        c.Query("bitis"),
		Search:    c.Query("ara"),
		SortBy:    domain.FaultSort(c.Query("sirala")),
		Ascending: c.Query("yon") == "asc",
		Limit:     getIntParam(c, "limit", 0),
		Offset:    getIntParam(c, "offset", 0),
	}
}

// ListFaults handles GET /api/faults
func (h *Handler) ListFaults(c *gin.Context) {
	faults, err := h.svc.Faults.List(c.Request.Context(), principal(c), faultQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(faults), "arizalar": faults})
}

// FaultStats handles GET /api/faults/stats
func (h *Handler) FaultStats(c *gin.Context) {
	stats, err := h.svc.Faults.Stats(c.Request.Context(), principal(c), faultQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetFault handles GET /api/faults/:id
func (h *Handler) GetFault(c *gin.Context) {
	fault, err := h.svc.Faults.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fault)
}

// CreateFault handles POST /api/faults
func (h *Handler) CreateFault(c *gin.Context) {
	var in service.FaultInput
	if !bind(c, &in) {
		return
	}

	fault, err := h.svc.Faults.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fault)
}

// UpdateFault handles PATCH /api/faults/:id
func (h *Handler) UpdateFault(c *gin.Context) {
	var in service.FaultUpdate
	if !bind(c, &in) {
		return
	}

	fault, err := h.svc.Faults.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fault)
}

// CommentFault handles POST /api/faults/:id/comments
func (h *Handler) CommentFault(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}

	comment, err := h.svc.Faults.AddComment(c.Request.Context(), principal(c), c.Param("id"), req.Mesaj)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ResolveFault handles POST /api/faults/:id/resolve
func (h *Handler) ResolveFault(c *gin.Context) {
	var in service.ResolveInput
	if !bind(c, &in) {
		return
	}

	fault, err := h.svc.Faults.Resolve(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fault)
}

// DeleteFault handles DELETE /api/faults/:id
func (h *Handler) DeleteFault(c *gin.Context) {
	if err := h.svc.Faults.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Arıza kaydı silindi"})
}

// ExportFaultsCSV handles GET /api/faults/export/csv
func (h *Handler) ExportFaultsCSV(c *gin.Context) {
	data, name, err := h.svc.Faults.ExportCSV(c.Request.Context(), principal(c), faultQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "text/csv; charset=utf-8", name, data)
}

// ExportFaultsPDF handles GET /api/faults/export/pdf
func (h *Handler) ExportFaultsPDF(c *gin.Context) {
	data, name, err := h.svc.Faults.ExportPDF(c.Request.Context(), principal(c), faultQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/pdf", name, data)
}
