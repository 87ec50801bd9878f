package repository

import (
	"context"
	"time"

	"edeon_enerji/internal/domain"
)

// PlantRepository stores plants (santraller).
type PlantRepository interface {
	List(ctx context.Context, filter domain.PlantFilter) ([]domain.Plant, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	Insert(ctx context.Context, plant *domain.Plant) error
	Update(ctx context.Context, plant *domain.Plant) error
	Delete(ctx context.Context, id string) error
}

// ProductionRepository stores daily production records (uretimVerileri).
type ProductionRepository interface {
	List(ctx context.Context, filter domain.ProductionFilter) ([]domain.Production, error)
	Get(ctx context.Context, id string) (*domain.Production, error)
	// Insert returns domain.ErrDuplicate when the plant already has a
	// record for the same day.
	Insert(ctx context.Context, record *domain.Production) error
	ExistsForDay(ctx context.Context, santralID, gun string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByPlant(ctx context.Context, santralID string) (int64, error)
}

// FaultRepository stores fault tickets (arizalar).
type FaultRepository interface {
	List(ctx context.Context, filter domain.FaultFilter) ([]domain.Fault, error)
	Get(ctx context.Context, id string) (*domain.Fault, error)
	Insert(ctx context.Context, fault *domain.Fault) error
	Update(ctx context.Context, fault *domain.Fault) error
	AddComment(ctx context.Context, id string, comment domain.Comment) error
	Delete(ctx context.Context, id string) error
}

// MaintenanceRepository stores inspection records. The kind selects the
// collection.
type MaintenanceRepository interface {
	List(ctx context.Context, filter domain.MaintenanceFilter) ([]domain.Maintenance, error)
	Get(ctx context.Context, kind domain.MaintenanceKind, id string) (*domain.Maintenance, error)
	Insert(ctx context.Context, record *domain.Maintenance) error
	Delete(ctx context.Context, kind domain.MaintenanceKind, id string) error
}

// SiteRepository stores sites (sahalar).
type SiteRepository interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Site, error)
	Get(ctx context.Context, id string) (*domain.Site, error)
	Insert(ctx context.Context, site *domain.Site) error
	Update(ctx context.Context, site *domain.Site) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores accounts (kullanicilar).
type UserRepository interface {
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	AddSite(ctx context.Context, userID, siteID string) error
	// RemoveSite removes siteID from one user's site list.
	RemoveSite(ctx context.Context, userID, siteID string) error
	// PullSite removes siteID from every user's site list.
	PullSite(ctx context.Context, siteID string) (int64, error)
}

// StockRepository stores stock items (stoklar).
type StockRepository interface {
	List(ctx context.Context, filter domain.StockFilter) ([]domain.StockItem, error)
	Get(ctx context.Context, id string) (*domain.StockItem, error)
	Insert(ctx context.Context, item *domain.StockItem) error
	Update(ctx context.Context, item *domain.StockItem) error
	Adjust(ctx context.Context, id string, delta float64) (*domain.StockItem, error)
	Delete(ctx context.Context, id string) error
}

// WorkReportRepository stores work reports (isRaporlari).
type WorkReportRepository interface {
	List(ctx context.Context, filter domain.WorkReportFilter) ([]domain.WorkReport, error)
	Get(ctx context.Context, id string) (*domain.WorkReport, error)
	Insert(ctx context.Context, report *domain.WorkReport) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository stores per-user notifications (bildirimler).
type NotificationRepository interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	InsertMany(ctx context.Context, items []domain.Notification) error
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// DailyTotal is one day of mirrored production.
type DailyTotal struct {
	Day   time.Time `json:"gun"`
	Yield float64   `json:"uretim"`
}

// ProductionMirror is a time-series copy of production records.
type ProductionMirror interface {
	Write(ctx context.Context, records []domain.Production) error
	DailyTotals(ctx context.Context, santralID string, from, to time.Time) ([]DailyTotal, error)
	Type() string
}
