package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
)

// ListPlants handles GET /api/plants
func (h *Handler) ListPlants(c *gin.Context) {
	plants, err := h.svc.Plants.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(plants), "santraller": plants})
}

// GetPlant handles GET /api/plants/:id
func (h *Handler) GetPlant(c *gin.Context) {
	plant, err := h.svc.Plants.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// CreatePlant handles POST /api/plants
func (h *Handler) CreatePlant(c *gin.Context) {
	var in domain.Plant
	if !bind(c, &in) {
		return
	}

	plant, err := h.svc.Plants.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plant)
}

// UpdatePlant handles PUT /api/plants/:id
func (h *Handler) UpdatePlant(c *gin.Context) {
	var in domain.Plant
	if !bind(c, &in) {
		return
	}

	plant, err := h.svc.Plants.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// DeletePlant handles DELETE /api/plants/:id. Production records and
// customer links of the plant go with it.
func (h *Handler) DeletePlant(c *gin.Context) {
	res, err := h.svc.Plants.Delete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Santral silindi",
		"sonuc":   res,
	})
}

// PlantTargets handles GET /api/plants/:id/targets
func (h *Handler) PlantTargets(c *gin.Context) {
	targets, err := h.svc.Plants.Targets(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"santralId": c.Param("id"),
		"aylik":     targets,
		"yillik":    targets.Total(),
	})
}
