package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
)

type stubAuthenticator map[string]access.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (access.Principal, error) {
	p, ok := s[token]
	if !ok {
		return access.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

var testUsers = stubAuthenticator{
	"mgr":   {UserID: "u1", Name: "Yönetici", Role: domain.RoleManager},
	"guard": {UserID: "u2", Name: "Bekçi", Role: domain.RoleGuard},
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.Use(Correlation())
	r.Use(Logging())
	return r
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r := setupRouter()

	var captured access.Principal
	var role string
	r.GET("/test", Auth(testUsers), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		captured = p
		role = c.MustGet("role").(string)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := do(r, http.MethodGet, "/test", "mgr")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", captured.UserID)
	assert.Equal(t, "yonetici", role)
}

func TestAuth_MissingHeader(t *testing.T) {
	r := setupRouter()
	r.GET("/test", Auth(testUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := do(r, http.MethodGet, "/test", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Oturum açmanız gerekiyor")
}

func TestAuth_BadScheme(t *testing.T) {
	r := setupRouter()
	r.GET("/test", Auth(testUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_UnknownToken(t *testing.T) {
	r := setupRouter()
	r.GET("/test", Auth(testUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := do(r, http.MethodGet, "/test", "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := setupRouter()
	r.DELETE("/plants/1", Auth(testUsers), RequireRole(domain.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/plants/1", "mgr").Code)

	w := do(r, http.MethodDelete, "/plants/1", "guard")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Bu işlem için yetkiniz yok")
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	r := setupRouter()
	r.GET("/test", RequireRole(domain.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/test", "").Code)
}

func TestRequireAction(t *testing.T) {
	r := setupRouter()
	r.POST("/faults", Auth(testUsers), RequireAction(access.CreateFault), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/faults", "mgr").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/faults", "guard").Code)
}

func TestCorrelation(t *testing.T) {
	r := setupRouter()
	var seen string
	r.GET("/test", func(c *gin.Context) {
		seen = c.GetString("correlation_id")
		c.Status(http.StatusOK)
	})

	w := do(r, http.MethodGet, "/test", "")
	assert.NotEmpty(t, w.Header().Get(CorrelationHeader))
	assert.Equal(t, w.Header().Get(CorrelationHeader), seen)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(CorrelationHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(CorrelationHeader))
}

func TestCORS_Preflight(t *testing.T) {
	r := setupRouter()
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/test", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "INFO", levelFor(200))
	assert.Equal(t, "WARN", levelFor(404))
	assert.Equal(t, "ERROR", levelFor(503))
}
