package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
)

// WorkReportService manages work reports.
type WorkReportService struct {
	*env
	repo repository.WorkReportRepository
}

// WorkReportInput is a submitted work report.
type WorkReportInput struct {
	Baslik         string   `json:"baslik" validate:"required"`
	Aciklama       string   `json:"aciklama"`
	YapilanIsler   string   `json:"yapilanIsler" validate:"required"`
	Saha           string   `json:"saha" validate:"required"`
	Tarih          string   `json:"tarih"` // YYYY-MM-DD, today when empty
	BaslangicSaati string   `json:"baslangicSaati"`
	BitisSaati     string   `json:"bitisSaati"`
	Fotograflar    []string `json:"fotograflar"`
	Malzemeler     []string `json:"malzemeler"`
}

// Create stores a report.
func (s *WorkReportService) Create(ctx context.Context, p access.Principal, in WorkReportInput) (*domain.WorkReport, error) {
	if err := p.Require(access.WriteWorkReport); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	date := s.today()
	if in.Tarih != "" {
		d, err := parseDay(in.Tarih, s.loc)
		if err != nil {
			return nil, domain.NewValidationError("tarih", "Tarih YYYY-AA-GG biçiminde olmalıdır")
		}
		date = d
	}
	if err := checkClock(in.BaslangicSaati, in.BitisSaati); err != nil {
		return nil, err
	}

	report := domain.WorkReport{
		Baslik:          strings.TrimSpace(in.Baslik),
		Aciklama:        in.Aciklama,
		YapilanIsler:    in.YapilanIsler,
		Saha:            in.Saha,
		Tarih:           date,
		BaslangicSaati:  in.BaslangicSaati,
		BitisSaati:      in.BitisSaati,
		Fotograflar:     in.Fotograflar,
		OlusturanKisi:   p.Ref(),
		Malzemeler:      in.Malzemeler,
		OlusturmaTarihi: s.now(),
	}
	if report.Fotograflar == nil {
		report.Fotograflar = []string{}
	}
	if err := s.repo.Insert(ctx, &report); err != nil {
		return nil, fmt.Errorf("create work report: %w", err)
	}
	return &report, nil
}

// checkClock validates "HH:MM" start and end times when both are given.
func checkClock(start, end string) error {
	var st, et time.Time
	var err error
	if start != "" {
		if st, err = time.Parse("15:04", start); err != nil {
			return domain.NewValidationError("baslangicSaati", "Saat SS:DD biçiminde olmalıdır")
		}
	}
	if end != "" {
		if et, err = time.Parse("15:04", end); err != nil {
			return domain.NewValidationError("bitisSaati", "Saat SS:DD biçiminde olmalıdır")
		}
	}
	if start != "" && end != "" && et.Before(st) {
		return domain.NewValidationError("bitisSaati", "Bitiş saati başlangıçtan önce olamaz")
	}
	return nil
}

// List returns the reports of month ("YYYY-MM", empty for all), newest
// first.
func (s *WorkReportService) List(ctx context.Context, p access.Principal, sahaID, month string) ([]domain.WorkReport, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	r, err := monthRange(month, s.loc)
	if err != nil {
		return nil, err
	}
	scope := p.Scope().Narrow(sahaID)
	if scope.Empty() {
		return []domain.WorkReport{}, nil
	}
	return s.repo.List(ctx, domain.WorkReportFilter{Scope: scope, Range: r})
}

// Get returns one report.
func (s *WorkReportService) Get(ctx context.Context, p access.Principal, id string) (*domain.WorkReport, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.RequireSite(w.Saha); err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes a report.
func (s *WorkReportService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.DeleteWorkReport); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Daily counts the reports of each day of month.
func (s *WorkReportService) Daily(ctx context.Context, p access.Principal, sahaID, month string) ([]DayCount, error) {
	if month == "" {
		month = s.now().In(s.loc).Format("2006-01")
	}
	r, err := monthRange(month, s.loc)
	if err != nil {
		return nil, err
	}
	reports, err := s.List(ctx, p, sahaID, month)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, len(reports))
	for i, w := range reports {
		times[i] = w.Tarih
	}
	last := r.To.AddDate(0, 0, -1)
	return dailyCounts(times, last, last.Day(), s.loc), nil
}
