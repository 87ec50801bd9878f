// internal/api/handler.go
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/api/middleware"
	"edeon_enerji/internal/reconcile"
	"edeon_enerji/internal/service"
	"edeon_enerji/internal/storage"
)

// Handler serves the dashboard API
type Handler struct {
	svc      *service.Services
	uploader *storage.Uploader
}

// NewHandler creates a new handler. uploader may be nil, which disables
// the upload routes.
func NewHandler(svc *service.Services, uploader *storage.Uploader) *Handler {
	return &Handler{svc: svc, uploader: uploader}
}

// principal returns the caller. Routes behind Auth always have one.
func principal(c *gin.Context) access.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// bind decodes the JSON body into v and answers 400 on failure.
func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "Geçersiz istek gövdesi")
		return false
	}
	return true
}

// windowParam reads ?donem=day|month|year|all&deger=... into a window.
func windowParam(c *gin.Context) (reconcile.Window, bool) {
	w, err := reconcile.ParseWindow(c.Query("donem"), c.Query("deger"))
	if err != nil {
		badRequest(c, "Geçersiz dönem")
		return reconcile.Window{}, false
	}
	return w, true
}

// attachment sends a generated file as a download.
func attachment(c *gin.Context, contentType, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

// Helper functions
func getIntParam(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getBoolParam(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
