package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

const (
	dashboardKeyPrefix   = "dashboard:"
	dashboardRecentFault = 5
	dashboardProduction  = 30
	dashboardChartPoints = 14
	dashboardWeekDays    = 7
)

// DashboardService builds the home page summary.
type DashboardService struct {
	*env
	ttl         time.Duration
	faults      repository.FaultRepository
	stock       repository.StockRepository
	maintenance repository.MaintenanceRepository
	sites       repository.SiteRepository
	production  repository.ProductionRepository
}

// Dashboard is the home page of one user.
type Dashboard struct {
	SonArizalar      []domain.Fault     `json:"sonArizalar"`
	Istatistikler    DashboardCounts    `json:"istatistikler"`
	HaftalikArizalar []DayCount         `json:"haftalikArizalar"`
	DurumDagilimi    []Count            `json:"durumDagilimi"`
	SahaPerformansi  []SitePerformance  `json:"sahaPerformansi"`
	Uretim           ProductionOverview `json:"uretim"`
	OlusturmaZamani  time.Time          `json:"olusturmaZamani"`
}

// DashboardCounts are the headline numbers.
type DashboardCounts struct {
	ToplamAriza     int `json:"toplamAriza"`
	AcikAriza       int `json:"acikAriza"`
	DevamEdenAriza  int `json:"devamEdenAriza"`
	CozulenAriza    int `json:"cozulenAriza"`
	KritikStok      int `json:"kritikStok"`
	ToplamBakim     int `json:"toplamBakim"`
	PerformansSkoru int `json:"performansSkoru"`
}

// SitePerformance is the share of resolved faults of a site.
type SitePerformance struct {
	SahaID      string `json:"sahaId"`
	Saha        string `json:"saha"`
	ArizaSayisi int    `json:"arizaSayisi"`
	Cozulen     int    `json:"cozulen"`
	Performans  int    `json:"performans"`
}

// ProductionOverview summarizes the latest production records.
type ProductionOverview struct {
	ToplamUretim float64           `json:"toplamUretim"`
	BuAyUretim   float64           `json:"buAyUretim"`
	BuYilUretim  float64           `json:"buYilUretim"`
	ToplamCO2    float64           `json:"toplamCO2"`
	Grafik       []ProductionPoint `json:"grafik"`
}

// ProductionPoint is one chart point.
type ProductionPoint struct {
	Label  string  `json:"tarih"`
	Uretim float64 `json:"uretim"`
}

// Get returns the dashboard of p, cached per user.
func (s *DashboardService) Get(ctx context.Context, p access.Principal) (*Dashboard, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	if s.ttl <= 0 || s.cache == nil {
		return s.build(ctx, p), nil
	}

	return s.cache.GetOrBuild(ctx, p.UserID, s.ttl, func(ctx context.Context) (*Dashboard, error) {
		return s.build(ctx, p), nil
	})
}

func emptyDashboard(now time.Time) *Dashboard {
	return &Dashboard{
		SonArizalar:      []domain.Fault{},
		HaftalikArizalar: []DayCount{},
		DurumDagilimi:    []Count{},
		SahaPerformansi:  []SitePerformance{},
		Uretim:           ProductionOverview{Grafik: []ProductionPoint{}},
		OlusturmaZamani:  now,
	}
}

// build never fails. A section whose query fails is left empty.
func (s *DashboardService) build(ctx context.Context, p access.Principal) *Dashboard {
	now := s.now()
	d := emptyDashboard(now)

	scope := p.Scope()
	if scope.Empty() {
		return d
	}

	faults, err := s.faults.List(ctx, domain.FaultFilter{Scope: scope, SortBy: domain.SortByDate})
	faultsOK := err == nil
	if faultsOK {
		s.faultSections(d, faults, now)
	} else {
		logger.Error(fmt.Sprintf("❌ Dashboard faults failed for %s: %v", p.UserID, err))
	}

	if items, err := s.stock.List(ctx, domain.StockFilter{Scope: scope, CriticalOnly: true}); err != nil {
		logger.Error(fmt.Sprintf("❌ Dashboard stock failed for %s: %v", p.UserID, err))
	} else {
		d.Istatistikler.KritikStok = len(items)
	}

	for _, kind := range []domain.MaintenanceKind{domain.KindMechanical, domain.KindElectrical} {
		items, err := s.maintenance.List(ctx, domain.MaintenanceFilter{Kind: kind, Scope: scope})
		if err != nil {
			logger.Error(fmt.Sprintf("❌ Dashboard %s maintenance failed for %s: %v", kind, p.UserID, err))
			continue
		}
		d.Istatistikler.ToplamBakim += len(items)
	}

	if faultsOK {
		if sites, err := s.sites.List(ctx, scope); err != nil {
			logger.Error(fmt.Sprintf("❌ Dashboard sites failed for %s: %v", p.UserID, err))
		} else {
			d.SahaPerformansi = sitePerformance(sites, faults)
		}
	}

	records, err := s.production.List(ctx, domain.ProductionFilter{Scope: scope, Limit: dashboardProduction})
	if err != nil {
		logger.Error(fmt.Sprintf("❌ Dashboard production failed for %s: %v", p.UserID, err))
	} else {
		d.Uretim = productionOverview(records, now, s.loc)
	}

	return d
}

func (s *DashboardService) faultSections(d *Dashboard, faults []domain.Fault, now time.Time) {
	sorted := make([]domain.Fault, len(faults))
	copy(sorted, faults)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OlusturmaTarihi.After(sorted[j].OlusturmaTarihi)
	})
	if len(sorted) > dashboardRecentFault {
		sorted = sorted[:dashboardRecentFault]
	}
	d.SonArizalar = sorted

	c := &d.Istatistikler
	c.ToplamAriza = len(faults)
	times := make([]time.Time, len(faults))
	for i, f := range faults {
		times[i] = f.OlusturmaTarihi
		switch f.Durum {
		case domain.StatusOpen:
			c.AcikAriza++
		case domain.StatusInProgress:
			c.DevamEdenAriza++
		case domain.StatusResolved:
			c.CozulenAriza++
		}
	}
	c.PerformansSkoru = roundPercent(c.CozulenAriza, c.ToplamAriza)

	d.HaftalikArizalar = dailyCounts(times, now, dashboardWeekDays, s.loc)
	d.DurumDagilimi = []Count{
		{Label: domain.StatusOpen.Label(), Value: c.AcikAriza},
		{Label: domain.StatusInProgress.Label(), Value: c.DevamEdenAriza},
		{Label: "Çözülen", Value: c.CozulenAriza},
	}
}

// sitePerformance is 100 for a site without faults.
func sitePerformance(sites []domain.Site, faults []domain.Fault) []SitePerformance {
	out := make([]SitePerformance, 0, len(sites))
	for _, site := range sites {
		id := site.ID.Hex()
		sp := SitePerformance{SahaID: id, Saha: site.Ad, Performans: 100}
		for _, f := range faults {
			if f.Saha != id {
				continue
			}
			sp.ArizaSayisi++
			if f.Durum == domain.StatusResolved {
				sp.Cozulen++
			}
		}
		if sp.ArizaSayisi > 0 {
			sp.Performans = roundPercent(sp.Cozulen, sp.ArizaSayisi)
		}
		out = append(out, sp)
	}
	return out
}

// productionOverview works on records sorted newest first.
func productionOverview(records []domain.Production, now time.Time, loc *time.Location) ProductionOverview {
	ov := ProductionOverview{Grafik: []ProductionPoint{}}
	ln := now.In(loc)
	for _, r := range records {
		ov.ToplamUretim += r.GunlukUretim
		ov.ToplamCO2 += r.TasarrufEdilenCO2
		lt := r.Tarih.In(loc)
		if lt.Year() == ln.Year() {
			ov.BuYilUretim += r.GunlukUretim
			if lt.Month() == ln.Month() {
				ov.BuAyUretim += r.GunlukUretim
			}
		}
	}

	sorted := make([]domain.Production, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tarih.After(sorted[j].Tarih)
	})
	if len(sorted) > dashboardChartPoints {
		sorted = sorted[:dashboardChartPoints]
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		ov.Grafik = append(ov.Grafik, ProductionPoint{
			Label:  dayLabel(sorted[i].Tarih.In(loc)),
			Uretim: sorted[i].GunlukUretim,
		})
	}
	return ov
}
