// internal/service/service.go
// Wires repositories into the domain services

package service

import (
	"context"
	"fmt"
	"time"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/reconcile"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// Repositories groups the stores the services work on. Mirror may be nil.
type Repositories struct {
	Plants        repository.PlantRepository
	Production    repository.ProductionRepository
	Faults        repository.FaultRepository
	Maintenance   repository.MaintenanceRepository
	Sites         repository.SiteRepository
	Users         repository.UserRepository
	Stock         repository.StockRepository
	WorkReports   repository.WorkReportRepository
	Notifications repository.NotificationRepository
	Mirror        repository.ProductionMirror
}

// Mailer sends e-mail. A nil Mailer disables mail.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Options are the tunables of the services.
type Options struct {
	Location            *time.Location
	Pricing             reconcile.Pricing
	JWTSecret           string
	JWTIssuer           string
	JWTExpiryHours      int
	DashboardTTL        time.Duration
	MirrorBatchSize     int
	MirrorFlushInterval time.Duration
	Now                 func() time.Time
}

// OptionsFromConfig maps the environment configuration to Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Location: cfg.Location(),
		Pricing: reconcile.Pricing{
			UnitPrice: cfg.UnitPrice,
			FeeRatio:  cfg.DistributionFeeRatio,
			CO2Factor: cfg.CO2Factor,
		},
		JWTSecret:           cfg.JWTSecret,
		JWTIssuer:           cfg.JWTIssuer,
		JWTExpiryHours:      cfg.JWTExpiryHours,
		DashboardTTL:        time.Duration(cfg.DashboardCacheTTL) * time.Second,
		MirrorBatchSize:     cfg.MirrorBatchSize,
		MirrorFlushInterval: time.Duration(cfg.MirrorFlushInterval) * time.Millisecond,
	}
}

// env is shared by every service.
type env struct {
	loc     *time.Location
	now     func() time.Time
	pricing reconcile.Pricing
	cache   *DashboardCache
}

func (e *env) today() time.Time {
	return startOfDay(e.now(), e.loc)
}

// changed drops cached dashboards after a write.
func (e *env) changed() {
	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

// Services is the application layer used by the HTTP handlers.
type Services struct {
	Plants        *PlantService
	Production    *ProductionService
	Faults        *FaultService
	Maintenance   *MaintenanceService
	Sites         *SiteService
	Users         *UserService
	Stock         *StockService
	WorkReports   *WorkReportService
	Notifications *NotificationService
	Dashboard     *DashboardService

	mirror *MirrorWriter
	cache  *DashboardCache
}

// New builds every service. mailer may be nil.
func New(repos Repositories, opts Options, mailer Mailer) *Services {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pricing == (reconcile.Pricing{}) {
		opts.Pricing = reconcile.DefaultPricing
	}

	cache := NewDashboardCache(time.Minute, opts.Now)
	e := &env{
		loc:     opts.Location,
		now:     opts.Now,
		pricing: opts.Pricing,
		cache:   cache,
	}

	var mirror *MirrorWriter
	if repos.Mirror != nil {
		mirror = NewMirrorWriter(repos.Mirror, opts.MirrorBatchSize, opts.MirrorFlushInterval)
	}

	notifications := &NotificationService{env: e, repo: repos.Notifications, users: repos.Users, mailer: mailer}

	s := &Services{
		Plants: &PlantService{
			env:        e,
			repo:       repos.Plants,
			production: repos.Production,
			users:      repos.Users,
		},
		Production: &ProductionService{
			env:        e,
			repo:       repos.Production,
			plants:     repos.Plants,
			mirror:     mirror,
			mirrorRepo: repos.Mirror,
		},
		Faults: &FaultService{
			env:    e,
			repo:   repos.Faults,
			sites:  repos.Sites,
			notify: notifications,
		},
		Maintenance: &MaintenanceService{
			env:   e,
			repo:  repos.Maintenance,
			sites: repos.Sites,
		},
		Sites: &SiteService{
			env:   e,
			repo:  repos.Sites,
			users: repos.Users,
		},
		Users: &UserService{
			env:         e,
			repo:        repos.Users,
			secret:      opts.JWTSecret,
			issuer:      opts.JWTIssuer,
			expiryHours: opts.JWTExpiryHours,
		},
		Stock: &StockService{
			env:  e,
			repo: repos.Stock,
		},
		WorkReports: &WorkReportService{
			env:  e,
			repo: repos.WorkReports,
		},
		Notifications: notifications,
		Dashboard: &DashboardService{
			env:         e,
			ttl:         opts.DashboardTTL,
			faults:      repos.Faults,
			stock:       repos.Stock,
			maintenance: repos.Maintenance,
			sites:       repos.Sites,
			production:  repos.Production,
		},
		mirror: mirror,
		cache:  cache,
	}

	logger.Info(fmt.Sprintf("✓ Services ready (tz=%s, mirror=%t, mail=%t)",
		opts.Location, mirror != nil, mailer != nil))
	return s
}

// MirrorStats returns nil when no mirror is configured.
func (s *Services) MirrorStats() *MirrorStatsView {
	if s.mirror == nil {
		return nil
	}
	count, at := s.mirror.LastFlush()
	return &MirrorStatsView{MirrorStats: s.mirror.Stats(), LastFlushCount: count, LastFlushTime: at}
}

// CacheStats reports the dashboard cache.
func (s *Services) CacheStats() CacheStats {
	return s.cache.Stats()
}

// Close flushes the mirror and stops background goroutines.
func (s *Services) Close() {
	if s.mirror != nil {
		s.mirror.Close()
	}
	s.cache.Close()
}
