// internal/domain/models.go
// Query filters and shared value types

package domain

import "time"

// TimeRange is an instant range, From inclusive and To exclusive. Nil
// ends are open.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside r.
func (r TimeRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// PlantFilter selects plants.
type PlantFilter struct {
	Scope Scope
	Limit int
}

// ProductionFilter selects production records.
type ProductionFilter struct {
	SantralID string
	Scope     Scope // plant ids
	Range     TimeRange
	Limit     int
	Offset    int
}

// FaultSort is a sortable fault column.
type FaultSort string

const (
	SortByDate     FaultSort = "tarih"
	SortByStatus   FaultSort = "durum"
	SortByPriority FaultSort = "oncelik"
	SortBySite     FaultSort = "saha"
)

// FaultFilter selects faults.
type FaultFilter struct {
	Scope     Scope // site ids
	Saha      string
	Durum     FaultStatus
	Oncelik   Priority
	Range     TimeRange
	Search    string
	SortBy    FaultSort
	Ascending bool
	Limit     int
	Offset    int
}

// MaintenanceFilter selects maintenance records of one kind.
type MaintenanceFilter struct {
	Kind   MaintenanceKind
	Scope  Scope // site ids
	SahaID string
	Range  TimeRange
	Search string
	Limit  int
}

// WorkReportFilter selects work reports.
type WorkReportFilter struct {
	Scope Scope // site ids
	Saha  string
	Range TimeRange
	Limit int
}

// StockFilter selects stock items.
type StockFilter struct {
	Scope        Scope // site ids
	SahaID       string
	CriticalOnly bool
}

// MirrorStats reports the production mirror writer state.
type MirrorStats struct {
	InsertedCount int64   `json:"inserted_count"`
	FailedCount   int64   `json:"failed_count"`
	BufferSize    int     `json:"buffer_size"`
	SuccessRate   float64 `json:"success_rate"`
	DatabaseType  string  `json:"database_type"`
}
