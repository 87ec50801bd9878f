package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/service"
)

type loginRequest struct {
	Email string `json:"email"`
	Sifre string `json:"sifre"`
}

type passwordRequest struct {
	MevcutSifre string `json:"mevcutSifre"`
	YeniSifre   string `json:"yeniSifre"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.svc.Users.Login(c.Request.Context(), req.Email, req.Sifre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me handles GET /api/me
func (h *Handler) Me(c *gin.Context) {
	u, err := h.svc.Users.Me(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Navigation handles GET /api/navigation
func (h *Handler) Navigation(c *gin.Context) {
	p := principal(c)
	c.JSON(http.StatusOK, gin.H{
		"rol":    p.Role,
		"etiket": p.Role.Label(),
		"menu":   access.Navigation(p.Role),
	})
}

// UpdateProfile handles PUT /api/me/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in service.ProfileInput
	if !bind(c, &in) {
		return
	}

	u, err := h.svc.Users.UpdateProfile(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword handles PUT /api/me/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.Users.ChangePassword(c.Request.Context(), principal(c), req.MevcutSifre, req.YeniSifre); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Şifre güncellendi"})
}

// ListUsers handles GET /api/users?rol=
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.Users.List(c.Request.Context(), principal(c), domain.Role(c.Query("rol")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "kullanicilar": users})
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var in service.UserInput
	if !bind(c, &in) {
		return
	}

	u, err := h.svc.Users.Create(c.Request.Context(), principal(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUser handles PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	var in service.UserInput
	if !bind(c, &in) {
		return
	}

	u, err := h.svc.Users.Update(c.Request.Context(), principal(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.svc.Users.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Kullanıcı silindi"})
}
