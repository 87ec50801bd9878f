package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"edeon_enerji/internal/domain"
)

const dateTimeLayout = "02.01.2006 15:04"

var faultHeaders = []string{
	"Arıza No", "Başlık", "Saha", "Durum", "Öncelik",
	"Oluşturma Tarihi", "Çözüm Tarihi", "Çözüm Süresi", "Açıklama",
}

// FaultTable is the full fault report. Open tickets show the time
// elapsed so far in the duration column.
func FaultTable(faults []domain.Fault, now time.Time, loc *time.Location) Table {
	t := Table{Headers: faultHeaders}
	for _, f := range faults {
		resolved := "-"
		if f.Cozum != nil {
			resolved = f.Cozum.TamamlanmaTarihi.In(loc).Format(dateTimeLayout)
		}
		t.Rows = append(t.Rows, []string{
			f.ShortID(),
			f.Baslik,
			f.SahaAdi,
			f.Durum.Display(),
			f.Oncelik.Display(),
			f.OlusturmaTarihi.In(loc).Format(dateTimeLayout),
			resolved,
			ResolutionText(f, now),
			f.Aciklama,
		})
	}
	return t
}

// FaultPDFTable keeps the first seven columns of FaultTable.
func FaultPDFTable(faults []domain.Fault, now time.Time, loc *time.Location) Table {
	full := FaultTable(faults, now, loc)
	t := Table{
		Headers: full.Headers[:7],
		Widths:  []float64{1.1, 3, 2, 1.4, 1.1, 1.9, 1.9},
	}
	for _, row := range full.Rows {
		t.Rows = append(t.Rows, row[:7])
	}
	return t
}

// ResolutionText describes how long a fault took, or has been open.
func ResolutionText(f domain.Fault, now time.Time) string {
	if d, ok := f.ResolutionTime(); ok {
		return durationText(d, true)
	}
	return durationText(now.Sub(f.OlusturmaTarihi), false)
}

// durationText is "X dakika", "H saat" or "G gün S saat", with the
// locative and "çözüldü" when resolved.
func durationText(d time.Duration, resolved bool) string {
	if d < 0 {
		d = 0
	}
	minuteUnit, hourUnit, suffix := "dakika", "saat", ""
	if resolved {
		minuteUnit, hourUnit, suffix = "dakikada", "saatte", " çözüldü"
	}

	var text string
	switch {
	case d < time.Hour:
		text = fmt.Sprintf("%d %s", int(d.Minutes()), minuteUnit)
	case d < 24*time.Hour:
		text = fmt.Sprintf("%d %s", int(d.Hours()), hourUnit)
	default:
		hours := int(d.Hours())
		text = fmt.Sprintf("%d gün %d %s", hours/24, hours%24, hourUnit)
	}
	return text + suffix
}

var productionHeaders = []string{
	"Tarih", "Günlük Üretim (kWh)", "Gelir (₺)", "CO2 Tasarrufu (kg)", "Performans (%)",
}

// ProductionTable lists production records in the given order.
func ProductionTable(records []domain.Production, loc *time.Location) Table {
	t := Table{Headers: productionHeaders}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Tarih.In(loc).Format("02.01.2006"),
			number(r.GunlukUretim),
			number(r.Gelir),
			number(r.TasarrufEdilenCO2),
			number(r.PerformansOrani),
		})
	}
	return t
}

// MaintenanceTable lists inspections with their failed sections.
func MaintenanceTable(records []domain.Maintenance, siteNames map[string]string, loc *time.Location) Table {
	t := Table{
		Headers: []string{"Tarih", "Tür", "Saha", "Kontrol Eden", "Durum", "Sorunlu Bölümler"},
		Widths:  []float64{1.2, 1, 1.8, 1.8, 1, 4},
	}
	for _, m := range records {
		status := "Sorunsuz"
		if m.HasIssue() {
			status = "Sorunlu"
		}
		site := siteNames[m.SahaID]
		if site == "" {
			site = m.SahaID
		}
		t.Rows = append(t.Rows, []string{
			m.Tarih.In(loc).Format("02.01.2006"),
			m.Tur.Label(),
			site,
			m.KontrolEden.Ad,
			status,
			issueSections(m),
		})
	}
	return t
}

func issueSections(m domain.Maintenance) string {
	var labels []string
	seen := map[string]bool{}
	for _, is := range m.Issues() {
		if !seen[is.Category] {
			seen[is.Category] = true
			labels = append(labels, is.Label)
		}
	}
	if len(labels) == 0 {
		return "-"
	}
	return strings.Join(labels, ", ")
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
