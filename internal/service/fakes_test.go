package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

type fakePlants struct {
	mu    sync.Mutex
	items map[string]domain.Plant
}

func (r *fakePlants) List(_ context.Context, f domain.PlantFilter) ([]domain.Plant, error) {
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

func (r *fakePlants) Get(_ context.Context, id string) (*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, notFound("plant", id)
	}
	return &p, nil
}

func (r *fakePlants) Insert(_ context.Context, p *domain.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&p.ID)
	if r.items == nil {
		r.items = map[string]domain.Plant{}
	}
	r.items[p.ID.Hex()] = *p
	return nil
}

func (r *fakePlants) Update(_ context.Context, p *domain.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID.Hex()]; !ok {
		return notFound("plant", p.ID.Hex())
	}
	r.items[p.ID.Hex()] = *p
	return nil
}

func (r *fakePlants) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound("plant", id)
	}
	delete(r.items, id)
	return nil
}

type fakeProduction struct {
	mu    sync.Mutex
	items []domain.Production
	err   error
}

func (r *fakeProduction) List(_ context.Context, f domain.ProductionFilter) ([]domain.Production, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	scope := f.Scope.Narrow(f.SantralID)
	out := []domain.Production{}
	for _, p := range r.items {
		if scope.Allows(p.SantralID) && f.Range.Contains(p.Tarih) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tarih.After(out[j].Tarih) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeProduction) Get(_ context.Context, id string) (*domain.Production, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.ID.Hex() == id {
			return &p, nil
		}
	}
	return nil, notFound("production", id)
}

func (r *fakeProduction) Insert(_ context.Context, p *domain.Production) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.SantralID == p.SantralID && e.Gun == p.Gun {
			return fmt.Errorf("insert: %w", domain.ErrDuplicate)
		}
	}
	ensureID(&p.ID)
	r.items = append(r.items, *p)
	return nil
}

func (r *fakeProduction) ExistsForDay(_ context.Context, santralID, gun string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.SantralID == santralID && e.Gun == gun {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProduction) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.items {
		if p.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("production", id)
}

func (r *fakeProduction) DeleteByPlant(_ context.Context, santralID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var n int64
	for _, p := range r.items {
		if p.SantralID == santralID {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.items = kept
	return n, nil
}

type fakeFaults struct {
	mu    sync.Mutex
	items []domain.Fault
	err   error
}

func (r *fakeFaults) List(_ context.Context, f domain.FaultFilter) ([]domain.Fault, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	scope := f.Scope.Narrow(f.Saha)
	out := []domain.Fault{}
	for _, x := range r.items {
		if !scope.Allows(x.Saha) || !f.Range.Contains(x.OlusturmaTarihi) {
			continue
		}
		if f.Durum != "" && x.Durum != f.Durum {
			continue
		}
		if f.Oncelik != "" && x.Oncelik != f.Oncelik {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(x.Baslik+" "+x.Aciklama+" "+x.SahaAdi), q) {
				continue
			}
		}
		out = append(out, x)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OlusturmaTarihi.After(out[j].OlusturmaTarihi) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []domain.Fault{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeFaults) Get(_ context.Context, id string) (*domain.Fault, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.ID.Hex() == id {
			return &x, nil
		}
	}
	return nil, notFound("fault", id)
}

func (r *fakeFaults) Insert(_ context.Context, f *domain.Fault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&f.ID)
	r.items = append(r.items, *f)
	return nil
}

func (r *fakeFaults) Update(_ context.Context, f *domain.Fault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == f.ID {
			r.items[i] = *f
			return nil
		}
	}
	return notFound("fault", f.ID.Hex())
}

func (r *fakeFaults) AddComment(_ context.Context, id string, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			r.items[i].Yorumlar = append(r.items[i].Yorumlar, c)
			return nil
		}
	}
	return notFound("fault", id)
}

func (r *fakeFaults) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("fault", id)
}

type fakeMaintenance struct {
	mu    sync.Mutex
	items []domain.Maintenance
}

func (r *fakeMaintenance) List(_ context.Context, f domain.MaintenanceFilter) ([]domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scope := f.Scope.Narrow(f.SahaID)
	out := []domain.Maintenance{}
	for _, m := range r.items {
		if m.Tur == f.Kind && scope.Allows(m.SahaID) && f.Range.Contains(m.Tarih) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMaintenance) Get(_ context.Context, kind domain.MaintenanceKind, id string) (*domain.Maintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.Tur == kind && m.ID.Hex() == id {
			return &m, nil
		}
	}
	return nil, notFound("maintenance", id)
}

func (r *fakeMaintenance) Insert(_ context.Context, m *domain.Maintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&m.ID)
	r.items = append(r.items, *m)
	return nil
}

func (r *fakeMaintenance) Delete(_ context.Context, kind domain.MaintenanceKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.items {
		if m.Tur == kind && m.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("maintenance", id)
}

type fakeSites struct {
	mu    sync.Mutex
	items []domain.Site
}

func (r *fakeSites) List(_ context.Context, scope domain.Scope) ([]domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Site{}
	for _, s := range r.items {
		if scope.Allows(s.ID.Hex()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSites) Get(_ context.Context, id string) (*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.ID.Hex() == id {
			return &s, nil
		}
	}
	return nil, notFound("site", id)
}

func (r *fakeSites) Insert(_ context.Context, s *domain.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&s.ID)
	r.items = append(r.items, *s)
	return nil
}

func (r *fakeSites) Update(_ context.Context, s *domain.Site) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == s.ID {
			r.items[i] = *s
			return nil
		}
	}
	return notFound("site", s.ID.Hex())
}

func (r *fakeSites) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("site", id)
}

type fakeUsers struct {
	mu    sync.Mutex
	items []domain.User
}

func (r *fakeUsers) List(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.items {
		if role == "" || u.Rol == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsers) find(match func(domain.User) bool, what string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if match(u) {
			cp := u
			cp.Sahalar = append([]string(nil), u.Sahalar...)
			return &cp, nil
		}
	}
	return nil, notFound("user", what)
}

func (r *fakeUsers) Get(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID.Hex() == id }, id)
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == strings.ToLower(email) }, email)
}

func (r *fakeUsers) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.FirebaseUID != "" && u.FirebaseUID == uid }, uid)
}

func (r *fakeUsers) Insert(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Email == u.Email {
			return fmt.Errorf("insert user: %w", domain.ErrDuplicate)
		}
	}
	ensureID(&u.ID)
	r.items = append(r.items, *u)
	return nil
}

func (r *fakeUsers) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == u.ID {
			r.items[i] = *u
			return nil
		}
	}
	return notFound("user", u.ID.Hex())
}

func (r *fakeUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("user", id)
}

func (r *fakeUsers) AddSite(_ context.Context, userID, siteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == userID {
			for _, s := range x.Sahalar {
				if s == siteID {
					return nil
				}
			}
			r.items[i].Sahalar = append(r.items[i].Sahalar, siteID)
			return nil
		}
	}
	return notFound("user", userID)
}

func (r *fakeUsers) RemoveSite(_ context.Context, userID, siteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() != userID {
			continue
		}
		kept := x.Sahalar[:0:0]
		for _, s := range x.Sahalar {
			if s != siteID {
				kept = append(kept, s)
			}
		}
		r.items[i].Sahalar = kept
		return nil
	}
	return notFound("user", userID)
}

func (r *fakeUsers) PullSite(_ context.Context, siteID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i, x := range r.items {
		kept := x.Sahalar[:0:0]
		for _, s := range x.Sahalar {
			if s != siteID {
				kept = append(kept, s)
			}
		}
		if len(kept) != len(x.Sahalar) {
			r.items[i].Sahalar = kept
			n++
		}
	}
	return n, nil
}

type fakeStock struct {
	mu    sync.Mutex
	items []domain.StockItem
	err   error
}

func (r *fakeStock) List(_ context.Context, f domain.StockFilter) ([]domain.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.StockItem{}
	for _, s := range r.items {
		if f.CriticalOnly && !s.Critical() {
			continue
		}
		if f.SahaID != "" && s.SahaID != f.SahaID {
			continue
		}
		if s.SahaID != "" && !f.Scope.Allows(s.SahaID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStock) Get(_ context.Context, id string) (*domain.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.ID.Hex() == id {
			return &s, nil
		}
	}
	return nil, notFound("stock", id)
}

func (r *fakeStock) Insert(_ context.Context, s *domain.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&s.ID)
	r.items = append(r.items, *s)
	return nil
}

func (r *fakeStock) Update(_ context.Context, s *domain.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID == s.ID {
			r.items[i] = *s
			return nil
		}
	}
	return notFound("stock", s.ID.Hex())
}

func (r *fakeStock) Adjust(_ context.Context, id string, delta float64) (*domain.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			if x.Miktar+delta < 0 {
				return nil, domain.NewValidationError("miktar", "Stok miktarı yetersiz")
			}
			r.items[i].Miktar += delta
			cp := r.items[i]
			return &cp, nil
		}
	}
	return nil, notFound("stock", id)
}

func (r *fakeStock) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.items {
		if x.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("stock", id)
}

type fakeWorkReports struct {
	mu    sync.Mutex
	items []domain.WorkReport
}

func (r *fakeWorkReports) List(_ context.Context, f domain.WorkReportFilter) ([]domain.WorkReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scope := f.Scope.Narrow(f.Saha)
	out := []domain.WorkReport{}
	for _, w := range r.items {
		if scope.Allows(w.Saha) && f.Range.Contains(w.Tarih) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkReports) Get(_ context.Context, id string) (*domain.WorkReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.items {
		if w.ID.Hex() == id {
			return &w, nil
		}
	}
	return nil, notFound("work report", id)
}

func (r *fakeWorkReports) Insert(_ context.Context, w *domain.WorkReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&w.ID)
	r.items = append(r.items, *w)
	return nil
}

func (r *fakeWorkReports) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.items {
		if w.ID.Hex() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return notFound("work report", id)
}

type fakeNotifications struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *fakeNotifications) ListForUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Notification{}
	for _, n := range r.items {
		if n.KullaniciID == userID && (!unreadOnly || !n.Okundu) {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotifications) InsertMany(_ context.Context, items []domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		ensureID(&items[i].ID)
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeNotifications) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.items {
		if n.ID.Hex() == id && n.KullaniciID == userID {
			r.items[i].Okundu = true
			return nil
		}
	}
	return notFound("notification", id)
}

func (r *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i, x := range r.items {
		if x.KullaniciID == userID && !x.Okundu {
			r.items[i].Okundu = true
			n++
		}
	}
	return n, nil
}

type fakeMirror struct {
	mu      sync.Mutex
	written []domain.Production
	err     error
}

func (m *fakeMirror) Write(_ context.Context, records []domain.Production) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, records...)
	return nil
}

func (m *fakeMirror) DailyTotals(_ context.Context, santralID string, from, to time.Time) ([]repository.DailyTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.DailyTotal
	for _, r := range m.written {
		if r.SantralID == santralID && !r.Tarih.Before(from) && r.Tarih.Before(to) {
			out = append(out, repository.DailyTotal{Day: r.Tarih, Yield: r.GunlukUretim})
		}
	}
	return out, nil
}

func (m *fakeMirror) Type() string { return "fake" }

func (m *fakeMirror) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.written)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(_ context.Context, to []string, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, subject+" -> "+strings.Join(to, ","))
	return nil
}

// fixture holds a Services over fakes with a fixed clock.
type fixture struct {
	svc    *Services
	plants *fakePlants
	prod   *fakeProduction
	faults *fakeFaults
	maint  *fakeMaintenance
	sites  *fakeSites
	users  *fakeUsers
	stock  *fakeStock
	works  *fakeWorkReports
	notes  *fakeNotifications
	mirror *fakeMirror
	mailer *fakeMailer
	now    time.Time
}

var testLoc = time.FixedZone("TRT", 3*3600)

func newFixture(withMirror bool) *fixture {
	f := &fixture{
		plants: &fakePlants{},
		prod:   &fakeProduction{},
		faults: &fakeFaults{},
		maint:  &fakeMaintenance{},
		sites:  &fakeSites{},
		users:  &fakeUsers{},
		stock:  &fakeStock{},
		works:  &fakeWorkReports{},
		notes:  &fakeNotifications{},
		mailer: &fakeMailer{},
		now:    time.Date(2024, 6, 15, 14, 30, 0, 0, testLoc),
	}
	repos := Repositories{
		Plants:        f.plants,
		Production:    f.prod,
		Faults:        f.faults,
		Maintenance:   f.maint,
		Sites:         f.sites,
		Users:         f.users,
		Stock:         f.stock,
		WorkReports:   f.works,
		Notifications: f.notes,
	}
	if withMirror {
		f.mirror = &fakeMirror{}
		repos.Mirror = f.mirror
	}
	f.svc = New(repos, Options{
		Location:            testLoc,
		JWTSecret:           "test-secret",
		JWTIssuer:           "test",
		JWTExpiryHours:      1,
		MirrorBatchSize:     2,
		MirrorFlushInterval: time.Hour,
		Now:                 func() time.Time { return f.now },
	}, f.mailer)
	return f
}

var (
	manager    = access.Principal{UserID: "mgr", Name: "Ayşe Yönetici", Role: domain.RoleManager}
	technician = access.Principal{UserID: "tech", Name: "Mehmet Tekniker", Role: domain.RoleTechnician}
	guard      = access.Principal{UserID: "guard", Name: "Bekçi", Role: domain.RoleGuard}
)

func customer(sites ...string) access.Principal {
	return access.Principal{UserID: "cust", Name: "Müşteri", Role: domain.RoleCustomer, Sites: sites}
}

func (f *fixture) addPlant(name string, capacity, yearly float64) domain.Plant {
	p := domain.Plant{Ad: name, Kapasite: capacity, YillikHedefUretim: yearly}
	_ = f.plants.Insert(context.Background(), &p)
	return p
}

func (f *fixture) addSite(name string) domain.Site {
	s := domain.Site{Ad: name}
	_ = f.sites.Insert(context.Background(), &s)
	return s
}

func (f *fixture) addUser(u domain.User) domain.User {
	_ = f.users.Insert(context.Background(), &u)
	return u
}
