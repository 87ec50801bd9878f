package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/internal/service"
	"edeon_enerji/internal/storage"
)

type memPlants struct {
	mu    sync.Mutex
	items map[string]domain.Plant
}

func (r *memPlants) List(_ context.Context, f domain.PlantFilter) ([]domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Plant{}
	for id, p := range r.items {
		if f.Scope.Allows(id) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlants) Get(_ context.Context, id string) (*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("plant %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *memPlants) Insert(_ context.Context, p *domain.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.items[p.ID.Hex()] = *p
	return nil
}

func (r *memPlants) Update(_ context.Context, p *domain.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID.Hex()] = *p
	return nil
}

func (r *memPlants) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memProduction struct {
	mu    sync.Mutex
	items []domain.Production
}

func (r *memProduction) List(_ context.Context, f domain.ProductionFilter) ([]domain.Production, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Production{}
	for _, p := range r.items {
		if p.SantralID == f.SantralID && f.Range.Contains(p.Tarih) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProduction) Get(_ context.Context, id string) (*domain.Production, error) {
	return nil, fmt.Errorf("production %s: %w", id, domain.ErrNotFound)
}

func (r *memProduction) Insert(_ context.Context, p *domain.Production) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	r.items = append(r.items, *p)
	return nil
}

func (r *memProduction) ExistsForDay(_ context.Context, santralID, gun string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.SantralID == santralID && p.Gun == gun {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProduction) Delete(_ context.Context, id string) error { return nil }

func (r *memProduction) DeleteByPlant(_ context.Context, santralID string) (int64, error) {
	return 0, nil
}

type memStore struct {
	mu   sync.Mutex
	puts map[string]int
}

func (s *memStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts[key] = len(data)
	return "/files/" + key, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.puts, key)
	return nil
}

type tokens map[string]access.Principal

func (t tokens) Authenticate(_ context.Context, token string) (access.Principal, error) {
	p, ok := t[token]
	if !ok {
		return access.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

var testTokens = tokens{
	"mgr":   {UserID: "u1", Name: "Ayşe", Role: domain.RoleManager},
	"tech":  {UserID: "u2", Name: "Mehmet", Role: domain.RoleTechnician},
	"guard": {UserID: "u3", Name: "Ali", Role: domain.RoleGuard},
}

type testServer struct {
	router *gin.Engine
	plants *memPlants
	store  *memStore
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	plants := &memPlants{items: map[string]domain.Plant{}}
	store := &memStore{puts: map[string]int{}}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	svc := service.New(service.Repositories{
		Plants:     plants,
		Production: &memProduction{},
	}, service.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}, nil)
	t.Cleanup(svc.Close)

	h := NewHandler(svc, storage.NewUploader(store))
	return &testServer{
		router: NewRouter(h, testTokens, RouterOptions{}),
		plants: plants,
		store:  store,
	}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) addPlant(t *testing.T) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/plants", "mgr", gin.H{
		"ad":                "Konya GES",
		"kapasite":          500,
		"yillikHedefUretim": 120000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var plant domain.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))
	return plant.ID.Hex()
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestHealth(t *testing.T) {
	s := setupRouter(t)
	w := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	s := setupRouter(t)

	for _, path := range []string{"/api/plants", "/api/faults", "/api/dashboard", "/api/me"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouteGuards(t *testing.T) {
	s := setupRouter(t)

	w := s.do(http.MethodPost, "/api/plants", "guard", gin.H{"ad": "X", "kapasite": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Bu işlem için yetkiniz yok", errorOf(t, w))

	w = s.do(http.MethodGet, "/api/users", "tech", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/api/plants/abc", "tech", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNavigation(t *testing.T) {
	s := setupRouter(t)
	w := s.do(http.MethodGet, "/api/navigation", "guard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rol":"bekci"`)
}

func TestPlantLifecycle(t *testing.T) {
	s := setupRouter(t)
	id := s.addPlant(t)

	w := s.do(http.MethodGet, "/api/plants/"+id, "tech", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Konya GES")

	w = s.do(http.MethodGet, "/api/plants/"+id+"/targets", "tech", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"aylik"`)

	w = s.do(http.MethodGet, "/api/plants", "mgr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestPlantErrors(t *testing.T) {
	s := setupRouter(t)

	w := s.do(http.MethodGet, "/api/plants/missing", "mgr", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Kayıt bulunamadı", errorOf(t, w))

	w = s.do(http.MethodPost, "/api/plants", "mgr", gin.H{"ad": "Eksik"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/plants", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer mgr")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Geçersiz istek gövdesi", errorOf(t, rec))
}

func TestProductionDuplicateDay(t *testing.T) {
	s := setupRouter(t)
	id := s.addPlant(t)
	body := gin.H{"santralId": id, "tarih": "2024-06-14", "gunlukUretim": 400}

	w := s.do(http.MethodPost, "/api/production", "tech", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/production", "tech", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Bu kayıt zaten mevcut", errorOf(t, w))
}

func TestProductionSummaryAndExport(t *testing.T) {
	s := setupRouter(t)
	id := s.addPlant(t)
	w := s.do(http.MethodPost, "/api/production", "tech", gin.H{"santralId": id, "tarih": "2024-06-14", "gunlukUretim": 400})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/plants/"+id+"/summary?donem=month&deger=2024-06", "mgr", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"karsilastirma"`)

	w = s.do(http.MethodGet, "/api/plants/"+id+"/summary?donem=week", "mgr", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Geçersiz dönem", errorOf(t, w))

	w = s.do(http.MethodGet, "/api/plants/"+id+"/production/csv", "mgr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	w = s.do(http.MethodGet, "/api/plants/"+id+"/charts?yil=2024&ay=13", "mgr", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMirrorDisabled(t *testing.T) {
	s := setupRouter(t)
	id := s.addPlant(t)

	w := s.do(http.MethodGet, "/api/plants/"+id+"/mirror", "mgr", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodGet, "/api/system/mirror", "mgr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"enabled":false}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/system/cache", "mgr", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func pngPart(t *testing.T, mw *multipart.Writer, field, name, contentType string) {
	t.Helper()
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, name))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)

	if contentType == "image/png" {
		require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 40, 20))))
		return
	}
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
}

func TestUploadPhotos(t *testing.T) {
	s := setupRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	pngPart(t, mw, "dosyalar", "panel 1.png", "image/png")
	pngPart(t, mw, "dosyalar", "notes.txt", "text/plain")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/arizalar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tech")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())
	var res storage.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Uploaded, 1)
	assert.Contains(t, res.Uploaded[0].Key, "arizalar/")
	assert.Contains(t, res.Uploaded[0].Key, "_panel_1.png")
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "notes.txt", res.Failed[0].Name)
	assert.Len(t, s.store.puts, 1)
}

func TestUploadPhotos_AllRejected(t *testing.T) {
	s := setupRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	pngPart(t, mw, "dosya", "notes.txt", "text/plain")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/arizalar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer mgr")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sadece resim dosyaları yüklenebilir", errorOf(t, w))
	assert.Empty(t, s.store.puts)
}

func TestUploadPhotos_GuardForbidden(t *testing.T) {
	s := setupRouter(t)
	w := s.do(http.MethodPost, "/api/uploads/arizalar", "guard", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.NewValidationError("ad", "Ad zorunludur"), http.StatusBadRequest, "Ad zorunludur"},
		{fmt.Errorf("wrap: %w", domain.ErrValidation), http.StatusBadRequest, "Geçersiz istek"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Oturum açmanız gerekiyor"},
		{fmt.Errorf("x: %w", domain.ErrForbidden), http.StatusForbidden, "Bu işlem için yetkiniz yok"},
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound, "Kayıt bulunamadı"},
		{fmt.Errorf("x: %w", domain.ErrDuplicate), http.StatusConflict, "Bu kayıt zaten mevcut"},
		{fmt.Errorf("x: %w", domain.ErrUnavailable), http.StatusServiceUnavailable, "Servis şu anda kullanılamıyor"},
		{errors.New("boom"), http.StatusInternalServerError, "Beklenmeyen bir hata oluştu"},
	}

	for _, tt := range tests {
		status, msg := statusOf(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.msg, msg)
	}
}

var _ repository.PlantRepository = (*memPlants)(nil)
var _ repository.ProductionRepository = (*memProduction)(nil)
