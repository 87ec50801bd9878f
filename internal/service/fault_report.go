package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/export"
)

// FaultStats is the fault report of a filtered fault list.
type FaultStats struct {
	Toplam              int        `json:"toplam"`
	Cozulen             int        `json:"cozulen"`
	Acik                int        `json:"acik"`
	Bekleyen            int        `json:"bekleyen"`
	DevamEden           int        `json:"devamEden"`
	OrtCozumSuresi      float64    `json:"ortCozumSuresi"` // hours
	GunlukDagilim       []DayCount `json:"gunlukDagilim"`
	DurumDagilimi       []Count    `json:"durumDagilimi"`
	OncelikDagilimi     []Count    `json:"oncelikDagilimi"`
	SahaDagilimi        []Count    `json:"sahaDagilimi"`
	CozumSuresiDagilimi []Count    `json:"cozumSuresiDagilimi"`
}

const unknownSite = "Bilinmeyen Saha"

var resolutionBuckets = []struct {
	label string
	max   time.Duration
}{
	{"0-2 saat", 2 * time.Hour},
	{"2-8 saat", 8 * time.Hour},
	{"8-24 saat", 24 * time.Hour},
	{"1-3 gün", 72 * time.Hour},
	{"3+ gün", 0},
}

// Stats computes the report of the faults matching q.
func (s *FaultService) Stats(ctx context.Context, p access.Principal, q FaultQuery) (*FaultStats, error) {
	faults, err := s.List(ctx, p, q.unpaged())
	if err != nil {
		return nil, err
	}
	r, err := presetRange(q, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	return computeFaultStats(faults, r, s.loc), nil
}

func computeFaultStats(faults []domain.Fault, r domain.TimeRange, loc *time.Location) *FaultStats {
	st := &FaultStats{Toplam: len(faults)}

	var resolvedHours float64
	var resolvedCount int
	bucketCounts := make([]int, len(resolutionBuckets))
	siteCounts := map[string]int{}
	var siteOrder []string
	priorityCounts := map[domain.Priority]int{}

	for _, f := range faults {
		switch f.Durum {
		case domain.StatusResolved:
			st.Cozulen++
		case domain.StatusOpen:
			st.Acik++
		case domain.StatusPending:
			st.Bekleyen++
		case domain.StatusInProgress:
			st.DevamEden++
		}
		priorityCounts[f.Oncelik]++

		site := f.SahaAdi
		if site == "" {
			site = unknownSite
		}
		if _, seen := siteCounts[site]; !seen {
			siteOrder = append(siteOrder, site)
		}
		siteCounts[site]++

		if d, ok := f.ResolutionTime(); ok {
			resolvedHours += d.Hours()
			resolvedCount++
			for i, b := range resolutionBuckets {
				if b.max == 0 || d <= b.max {
					bucketCounts[i]++
					break
				}
			}
		}
	}

	if resolvedCount > 0 {
		st.OrtCozumSuresi = resolvedHours / float64(resolvedCount)
	}

	st.DurumDagilimi = []Count{
		{Label: domain.StatusResolved.Label(), Value: st.Cozulen},
		{Label: domain.StatusOpen.Label(), Value: st.Acik},
		{Label: domain.StatusPending.Label(), Value: st.Bekleyen},
		{Label: domain.StatusInProgress.Label(), Value: st.DevamEden},
	}
	for _, pr := range domain.Priorities {
		st.OncelikDagilimi = append(st.OncelikDagilimi, Count{Label: pr.Label(), Value: priorityCounts[pr]})
	}
	for _, site := range siteOrder {
		st.SahaDagilimi = append(st.SahaDagilimi, Count{Label: site, Value: siteCounts[site]})
	}
	sort.SliceStable(st.SahaDagilimi, func(i, j int) bool {
		return st.SahaDagilimi[i].Value > st.SahaDagilimi[j].Value
	})
	for i, b := range resolutionBuckets {
		st.CozumSuresiDagilimi = append(st.CozumSuresiDagilimi, Count{Label: b.label, Value: bucketCounts[i]})
	}

	if r.From != nil && r.To != nil {
		end := r.To.Add(-time.Nanosecond)
		days := int(end.Sub(*r.From).Hours()/24) + 1
		if days > 30 {
			days = 30
		}
		times := make([]time.Time, len(faults))
		for i, f := range faults {
			times[i] = f.OlusturmaTarihi
		}
		st.GunlukDagilim = dailyCounts(times, end, days, loc)
	}

	return st
}

// ExportCSV renders the faults matching q as a CSV report.
func (s *FaultService) ExportCSV(ctx context.Context, p access.Principal, q FaultQuery) ([]byte, string, error) {
	faults, err := s.List(ctx, p, q.unpaged())
	if err != nil {
		return nil, "", err
	}
	data, err := export.CSV(export.FaultTable(faults, s.now(), s.loc))
	if err != nil {
		return nil, "", fmt.Errorf("fault csv: %w", err)
	}
	return data, export.FileName("ariza-raporu-"+s.today().Format(domain.DayLayout), "csv"), nil
}

// ExportPDF renders the faults matching q with their summary as a PDF.
func (s *FaultService) ExportPDF(ctx context.Context, p access.Principal, q FaultQuery) ([]byte, string, error) {
	faults, err := s.List(ctx, p, q.unpaged())
	if err != nil {
		return nil, "", err
	}
	r, err := presetRange(q, s.now(), s.loc)
	if err != nil {
		return nil, "", err
	}
	st := computeFaultStats(faults, r, s.loc)

	report := export.Report{
		Title:       "Arıza Raporu",
		GeneratedAt: s.now().In(s.loc),
		Filters:     faultFilterLines(q),
		Summary: []string{
			fmt.Sprintf("Toplam Arıza: %d", st.Toplam),
			fmt.Sprintf("Çözülen: %d", st.Cozulen),
			fmt.Sprintf("Açık: %d", st.Acik),
			fmt.Sprintf("Bekleyen: %d", st.Bekleyen),
			fmt.Sprintf("Devam Eden: %d", st.DevamEden),
			fmt.Sprintf("Ortalama Çözüm Süresi: %.1f saat", st.OrtCozumSuresi),
		},
		Table: export.FaultPDFTable(faults, s.now(), s.loc),
	}

	var buf bytes.Buffer
	if err := export.PDF(&buf, report); err != nil {
		return nil, "", fmt.Errorf("fault pdf: %w", err)
	}
	return buf.Bytes(), export.FileName("ariza-raporu-"+s.today().Format(domain.DayLayout), "pdf"), nil
}

func faultFilterLines(q FaultQuery) []string {
	var lines []string
	switch q.Preset {
	case PresetToday:
		lines = append(lines, "Tarih: Bugün")
	case PresetWeek:
		lines = append(lines, "Tarih: Son 7 gün")
	case PresetMonth:
		lines = append(lines, "Tarih: Son 30 gün")
	case PresetCustom:
		lines = append(lines, fmt.Sprintf("Tarih: %s - %s", q.From, q.To))
	}
	if q.Durum != "" {
		lines = append(lines, "Durum: "+q.Durum.Label())
	}
	if q.Oncelik != "" {
		lines = append(lines, "Öncelik: "+q.Oncelik.Label())
	}
	if q.Search != "" {
		lines = append(lines, "Arama: "+q.Search)
	}
	return lines
}
