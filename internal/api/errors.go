package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/domain"
	"edeon_enerji/pkg/logger"
)

// statusOf maps a service error to its HTTP status and user facing text.
func statusOf(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		if msg := verr.First(); msg != "" {
			return http.StatusBadRequest, msg
		}
		return http.StatusBadRequest, "Geçersiz istek"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Geçersiz istek"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Oturum açmanız gerekiyor"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Bu işlem için yetkiniz yok"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Kayıt bulunamadı"
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, "Bu kayıt zaten mevcut"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "Servis şu anda kullanılamıyor"
	default:
		return http.StatusInternalServerError, "Beklenmeyen bir hata oluştu"
	}
}

// respondError writes err as {"error": ...}. Internal errors are logged
// with the correlation id and never shown to the caller.
func respondError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WriteLog("ERROR", c.GetString("correlation_id"), c.FullPath(), err.Error())
	} else {
		logger.Debug(fmt.Sprintf("%s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, status, err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

// badRequest rejects malformed input that never reached a service.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
