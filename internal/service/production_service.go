package service

import (
	"context"
	"fmt"
	"time"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/export"
	"edeon_enerji/internal/reconcile"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// ProductionService records daily yields and reconciles them against
// plant targets.
type ProductionService struct {
	*env
	repo       repository.ProductionRepository
	plants     repository.PlantRepository
	mirror     *MirrorWriter
	mirrorRepo repository.ProductionMirror
}

// ProductionInput is a day's reading entered by an operator.
type ProductionInput struct {
	SantralID    string         `json:"santralId" validate:"required"`
	Tarih        string         `json:"tarih" validate:"required"` // YYYY-MM-DD
	GunlukUretim float64        `json:"gunlukUretim"`
	Hava         domain.Weather `json:"hava"`
	Notlar       string         `json:"notlar"`
}

// PlantSummary is the reconciliation of one plant over a window.
type PlantSummary struct {
	Plant            *domain.Plant        `json:"santral"`
	Window           reconcile.Window     `json:"donem"`
	Aggregate        reconcile.Aggregate  `json:"toplam"`
	Comparison       reconcile.Comparison `json:"karsilastirma"`
	MonthRealization float64              `json:"buAyGerceklesme"`
	YearRealization  float64              `json:"buYilGerceklesme"`
}

// Charts are the series drawn on a plant's production page.
type Charts struct {
	Daily   []reconcile.DailyPoint `json:"gunluk"`
	Monthly []reconcile.MonthlyRow `json:"aylik"`
	Year    reconcile.YearTotals   `json:"yillik"`
	Month   reconcile.MonthTotals  `json:"secilenAy"`
}

// MirrorStatsView adds the last flush to the mirror statistics.
type MirrorStatsView struct {
	domain.MirrorStats
	LastFlushCount int64     `json:"last_flush_count"`
	LastFlushTime  time.Time `json:"last_flush_time"`
}

// Create stores a production record with derived revenue, CO2 and
// performance. A plant has at most one record per calendar day.
func (s *ProductionService) Create(ctx context.Context, p access.Principal, in ProductionInput) (*domain.Production, error) {
	if err := p.Require(access.WriteProduction); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	if in.GunlukUretim <= 0 {
		return nil, domain.NewValidationError("gunlukUretim", "Günlük üretim değeri sıfırdan büyük olmalıdır")
	}

	day, err := parseDay(in.Tarih, s.loc)
	if err != nil {
		return nil, domain.NewValidationError("tarih", "Tarih YYYY-AA-GG biçiminde olmalıdır")
	}

	plant, err := s.plants.Get(ctx, in.SantralID)
	if err != nil {
		return nil, err
	}

	gun := day.Format(domain.DayLayout)
	exists, err := s.repo.ExistsForDay(ctx, in.SantralID, gun)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("production %s on %s: %w", in.SantralID, gun, domain.ErrDuplicate)
	}

	d := reconcile.DeriveRecord(in.GunlukUretim, plant.Kapasite, s.pricing)
	record := domain.Production{
		SantralID:         in.SantralID,
		Tarih:             day,
		Gun:               gun,
		GunlukUretim:      in.GunlukUretim,
		AnlikGuc:          plant.Kapasite,
		PerformansOrani:   d.Performance,
		Gelir:             d.Revenue,
		TasarrufEdilenCO2: d.CO2,
		Hava:              in.Hava,
		Notlar:            in.Notlar,
		OlusturanKisi:     p.Ref(),
		OlusturmaTarihi:   s.now(),
	}

	if err := s.repo.Insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("create production: %w", err)
	}

	if s.mirror != nil {
		s.mirror.Add(record)
	}

	s.changed()
	logger.Debug(fmt.Sprintf("✓ Production saved: %s %s %.1f kWh", plant.Ad, gun, record.GunlukUretim))
	return &record, nil
}

// List returns the records of a plant inside w, newest first.
func (s *ProductionService) List(ctx context.Context, p access.Principal, santralID string, w reconcile.Window) ([]domain.Production, error) {
	if err := p.RequireSite(santralID); err != nil {
		return nil, err
	}

	filter := domain.ProductionFilter{SantralID: santralID}
	if from, to, ok := w.Range(s.loc); ok {
		filter.Range = domain.TimeRange{From: &from, To: &to}
	}
	return s.repo.List(ctx, filter)
}

// Delete removes one record.
func (s *ProductionService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.DeleteProduction); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Summary reconciles a plant over w and reports this month's and this
// year's realization next to it.
func (s *ProductionService) Summary(ctx context.Context, p access.Principal, santralID string, w reconcile.Window) (*PlantSummary, error) {
	plant, records, err := s.load(ctx, p, santralID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	agg := reconcile.Sum(records, w, s.loc)
	target := reconcile.WindowTarget(plant.YillikHedefUretim, plant.AylikHedefler, w)

	monthW := reconcile.MonthOf(now)
	yearW := reconcile.YearOf(now)
	monthAgg := reconcile.Sum(records, monthW, s.loc)
	yearAgg := reconcile.Sum(records, yearW, s.loc)

	return &PlantSummary{
		Plant:      plant,
		Window:     w,
		Aggregate:  agg,
		Comparison: reconcile.Compare(agg, target, plant.Kapasite),
		MonthRealization: reconcile.Realization(monthAgg.TotalYield,
			reconcile.WindowTarget(plant.YillikHedefUretim, plant.AylikHedefler, monthW)),
		YearRealization: reconcile.Realization(yearAgg.TotalYield,
			reconcile.WindowTarget(plant.YillikHedefUretim, plant.AylikHedefler, yearW)),
	}, nil
}

// Charts builds the daily series of month and the monthly comparison of
// year for a plant.
func (s *ProductionService) Charts(ctx context.Context, p access.Principal, santralID string, year int, month time.Month) (*Charts, error) {
	if month < time.January || month > time.December {
		return nil, domain.NewValidationError("ay", "Geçersiz ay")
	}
	plant, records, err := s.load(ctx, p, santralID)
	if err != nil {
		return nil, err
	}

	targets := plant.Targets()
	return &Charts{
		Daily:   reconcile.DailySeries(records, year, month, targets, s.loc),
		Monthly: reconcile.MonthlyComparison(records, year, targets, s.loc),
		Year:    reconcile.YearSummary(records, year, plant.YillikHedefUretim, s.loc),
		Month:   reconcile.MonthSummary(records, year, month, targets, s.loc),
	}, nil
}

// ExportCSV renders the records of a plant in w. The file name carries
// the plant name and the window.
func (s *ProductionService) ExportCSV(ctx context.Context, p access.Principal, santralID string, w reconcile.Window) ([]byte, string, error) {
	if err := p.RequireSite(santralID); err != nil {
		return nil, "", err
	}
	plant, err := s.plants.Get(ctx, santralID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.List(ctx, p, santralID, w)
	if err != nil {
		return nil, "", err
	}

	data, err := export.CSV(export.ProductionTable(items, s.loc))
	if err != nil {
		return nil, "", fmt.Errorf("production csv: %w", err)
	}

	period := w.String()
	if w.Kind == reconcile.WindowAll {
		period = "tum"
	}
	return data, export.FileName(plant.Ad+"-uretim-"+period, "csv"), nil
}

// MirrorTotals reads daily yields back from the time-series mirror.
func (s *ProductionService) MirrorTotals(ctx context.Context, p access.Principal, santralID string, w reconcile.Window) ([]repository.DailyTotal, error) {
	if err := p.RequireSite(santralID); err != nil {
		return nil, err
	}
	if s.mirrorRepo == nil {
		return nil, fmt.Errorf("production mirror disabled: %w", domain.ErrUnavailable)
	}

	from, to, ok := w.Range(s.loc)
	if !ok {
		to = s.now()
		from = to.AddDate(-1, 0, 0)
	}
	return s.mirrorRepo.DailyTotals(ctx, santralID, from, to)
}

func (s *ProductionService) load(ctx context.Context, p access.Principal, santralID string) (*domain.Plant, []reconcile.Record, error) {
	if err := p.RequireSite(santralID); err != nil {
		return nil, nil, err
	}
	plant, err := s.plants.Get(ctx, santralID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.repo.List(ctx, domain.ProductionFilter{SantralID: santralID})
	if err != nil {
		return nil, nil, err
	}
	return plant, domain.Records(items), nil
}
