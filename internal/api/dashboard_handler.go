package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard handles GET /api/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard.Get(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListNotifications handles GET /api/notifications?okunmamis=true&limit=50
func (h *Handler) ListNotifications(c *gin.Context) {
	items, err := h.svc.Notifications.List(c.Request.Context(), principal(c), getBoolParam(c, "okunmamis"), getIntParam(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.Okundu {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "okunmamis": unread, "bildirimler": items})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.svc.Notifications.MarkRead(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.svc.Notifications.MarkAllRead(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "guncellenen": n})
}
