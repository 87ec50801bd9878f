package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/export"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// MaintenanceService manages mechanical and electrical inspections.
type MaintenanceService struct {
	*env
	repo  repository.MaintenanceRepository
	sites repository.SiteRepository
}

// MaintenanceInput is a submitted checklist.
type MaintenanceInput struct {
	Tur         domain.MaintenanceKind       `json:"tur" validate:"required"`
	SahaID      string                       `json:"sahaId" validate:"required"`
	Tarih       string                       `json:"tarih"` // YYYY-MM-DD, today when empty
	Durumlar    map[string]map[string]bool   `json:"durumlar"`
	Aciklamalar map[string]map[string]string `json:"aciklamalar"`
	GenelNotlar string                       `json:"genelNotlar"`
	Fotograflar []string                     `json:"fotograflar"`
}

// MaintenanceQuery filters inspections. An empty kind selects both.
type MaintenanceQuery struct {
	Kind   domain.MaintenanceKind
	SahaID string
	Month  string // YYYY-MM
	Search string
}

// MaintenanceStats is the inspection report.
type MaintenanceStats struct {
	Toplam          int     `json:"toplam"`
	Mekanik         int     `json:"mekanik"`
	Elektrik        int     `json:"elektrik"`
	Sorunlu         int     `json:"sorunlu"`
	Sorunsuz        int     `json:"sorunsuz"`
	KontrolOrani    float64 `json:"kontrolOrani"`
	SahaBasinaBakim []Count `json:"sahaBasinaBakim"`
	SorunDagilimi   []Count `json:"sorunDagilimi"`
}

// Create validates the checklist against its kind and stores it.
func (s *MaintenanceService) Create(ctx context.Context, p access.Principal, in MaintenanceInput) (*domain.Maintenance, error) {
	if err := p.Require(access.WriteMaintenance); err != nil {
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

	if _, err := s.sites.Get(ctx, in.SahaID); err != nil {
		return nil, err
	}

	record := domain.Maintenance{
		Tur:             in.Tur,
		SahaID:          in.SahaID,
		Tarih:           date,
		KontrolEden:     p.Ref(),
		Fotograflar:     in.Fotograflar,
		Durumlar:        in.Durumlar,
		Aciklamalar:     in.Aciklamalar,
		GenelNotlar:     in.GenelNotlar,
		OlusturmaTarihi: s.now(),
	}
	if record.Fotograflar == nil {
		record.Fotograflar = []string{}
	}
	if err := record.CheckCategories(); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("create %s maintenance: %w", in.Tur, err)
	}

	s.changed()
	logger.Info(fmt.Sprintf("✓ %s maintenance saved for site %s (issues: %t)", in.Tur.Label(), in.SahaID, record.HasIssue()))
	return &record, nil
}

// List returns the inspections matching q, newest first.
func (s *MaintenanceService) List(ctx context.Context, p access.Principal, q MaintenanceQuery) ([]domain.Maintenance, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	if q.Kind != "" && !q.Kind.Valid() {
		return nil, domain.NewValidationError("tur", "Geçersiz bakım türü")
	}
	r, err := monthRange(q.Month, s.loc)
	if err != nil {
		return nil, err
	}

	scope := p.Scope().Narrow(q.SahaID)
	if scope.Empty() {
		return []domain.Maintenance{}, nil
	}

	kinds := []domain.MaintenanceKind{domain.KindMechanical, domain.KindElectrical}
	if q.Kind != "" {
		kinds = []domain.MaintenanceKind{q.Kind}
	}

	var out []domain.Maintenance
	for _, k := range kinds {
		items, err := s.repo.List(ctx, domain.MaintenanceFilter{
			Kind:   k,
			Scope:  scope,
			Range:  r,
			Search: strings.TrimSpace(q.Search),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tarih.After(out[j].Tarih)
	})
	return out, nil
}

// Get returns one inspection if its site is visible to p.
func (s *MaintenanceService) Get(ctx context.Context, p access.Principal, kind domain.MaintenanceKind, id string) (*domain.Maintenance, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("tur", "Geçersiz bakım türü")
	}
	m, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := p.RequireSite(m.SahaID); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes one inspection.
func (s *MaintenanceService) Delete(ctx context.Context, p access.Principal, kind domain.MaintenanceKind, id string) error {
	if err := p.Require(access.DeleteMaintenance); err != nil {
		return err
	}
	if !kind.Valid() {
		return domain.NewValidationError("tur", "Geçersiz bakım türü")
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Stats computes the inspection report of the records matching q. Every
// site in scope appears in the per-site counts.
func (s *MaintenanceService) Stats(ctx context.Context, p access.Principal, q MaintenanceQuery) (*MaintenanceStats, error) {
	records, err := s.List(ctx, p, q)
	if err != nil {
		return nil, err
	}
	sites, err := s.sites.List(ctx, p.Scope().Narrow(q.SahaID))
	if err != nil {
		return nil, err
	}
	return computeMaintenanceStats(records, sites), nil
}

func computeMaintenanceStats(records []domain.Maintenance, sites []domain.Site) *MaintenanceStats {
	st := &MaintenanceStats{Toplam: len(records)}

	perSite := map[string]int{}
	issueCounts := map[string]int{}
	for _, m := range records {
		switch m.Tur {
		case domain.KindMechanical:
			st.Mekanik++
		case domain.KindElectrical:
			st.Elektrik++
		}
		if m.HasIssue() {
			st.Sorunlu++
		}
		perSite[m.SahaID]++

		for _, c := range m.Tur.Categories() {
			for _, ok := range m.Durumlar[c.Key] {
				if !ok {
					issueCounts[issueKey(m.Tur, c)]++
					break
				}
			}
		}
	}
	st.Sorunsuz = st.Toplam - st.Sorunlu
	st.KontrolOrani = percent(st.Sorunsuz, st.Toplam)

	st.SahaBasinaBakim = make([]Count, 0, len(sites))
	for _, site := range sites {
		st.SahaBasinaBakim = append(st.SahaBasinaBakim, Count{Label: site.Ad, Value: perSite[site.ID.Hex()]})
	}
	sort.SliceStable(st.SahaBasinaBakim, func(i, j int) bool {
		return st.SahaBasinaBakim[i].Value > st.SahaBasinaBakim[j].Value
	})

	st.SorunDagilimi = []Count{}
	for _, kind := range []domain.MaintenanceKind{domain.KindMechanical, domain.KindElectrical} {
		for _, c := range kind.Categories() {
			if n := issueCounts[issueKey(kind, c)]; n > 0 {
				st.SorunDagilimi = append(st.SorunDagilimi, Count{Label: issueKey(kind, c), Value: n})
			}
		}
	}
	sort.SliceStable(st.SorunDagilimi, func(i, j int) bool {
		return st.SorunDagilimi[i].Value > st.SorunDagilimi[j].Value
	})

	return st
}

func issueKey(kind domain.MaintenanceKind, c domain.Category) string {
	return kind.Label() + ": " + c.Label
}

// ExportPDF renders the inspections matching q with their summary.
func (s *MaintenanceService) ExportPDF(ctx context.Context, p access.Principal, q MaintenanceQuery) ([]byte, string, error) {
	records, err := s.List(ctx, p, q)
	if err != nil {
		return nil, "", err
	}
	sites, err := s.sites.List(ctx, p.Scope().Narrow(q.SahaID))
	if err != nil {
		return nil, "", err
	}
	st := computeMaintenanceStats(records, sites)

	names := make(map[string]string, len(sites))
	for _, site := range sites {
		names[site.ID.Hex()] = site.Ad
	}

	var filters []string
	if q.Month != "" {
		filters = append(filters, "Dönem: "+q.Month)
	}
	if q.Kind != "" {
		filters = append(filters, "Tür: "+q.Kind.Label())
	}
	if q.SahaID != "" {
		filters = append(filters, "Saha: "+names[q.SahaID])
	}

	report := export.Report{
		Title:       "Bakım Raporu",
		GeneratedAt: s.now().In(s.loc),
		Filters:     filters,
		Summary: []string{
			fmt.Sprintf("Toplam Bakım: %d", st.Toplam),
			fmt.Sprintf("Mekanik: %d", st.Mekanik),
			fmt.Sprintf("Elektrik: %d", st.Elektrik),
			fmt.Sprintf("Sorunlu: %d", st.Sorunlu),
			fmt.Sprintf("Sorunsuz: %d", st.Sorunsuz),
			fmt.Sprintf("Kontrol Oranı: %%%.1f", st.KontrolOrani),
		},
		Table: export.MaintenanceTable(records, names, s.loc),
	}

	var buf bytes.Buffer
	if err := export.PDF(&buf, report); err != nil {
		return nil, "", fmt.Errorf("maintenance pdf: %w", err)
	}
	name := "bakim-raporu-" + s.now().In(s.loc).Format(domain.DayLayout)
	return buf.Bytes(), export.FileName(name, "pdf"), nil
}

