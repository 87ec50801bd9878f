package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"edeon_enerji/internal/domain"
)

var shortMonths = [12]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}

// dayLabel formats t as "02 Oca".
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), shortMonths[t.Month()-1])
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// parseDay reads "YYYY-MM-DD" as midnight in loc.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DayLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// monthRange reads "YYYY-MM" as the range of that month in loc. An empty
// value is no range.
func monthRange(value string, loc *time.Location) (domain.TimeRange, error) {
	if value == "" {
		return domain.TimeRange{}, nil
	}
	t, err := time.ParseInLocation("2006-01", value, loc)
	if err != nil {
		return domain.TimeRange{}, domain.NewValidationError("ay", "Ay YYYY-AA biçiminde olmalıdır")
	}
	to := t.AddDate(0, 1, 0)
	return domain.TimeRange{From: &t, To: &to}, nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func roundPercent(part, total int) int {
	return int(math.Round(percent(part, total)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Count is a labelled count in a distribution.
type Count struct {
	Label string `json:"name"`
	Value int    `json:"value"`
}

// DayCount is the number of items on one calendar day.
type DayCount struct {
	Date  string `json:"tarih"`
	Label string `json:"label"`
	Value int    `json:"sayi"`
}

// dailyCounts buckets times into days consecutive days ending on end.
func dailyCounts(times []time.Time, end time.Time, days int, loc *time.Location) []DayCount {
	last := startOfDay(end, loc)
	out := make([]DayCount, days)
	for i := 0; i < days; i++ {
		day := last.AddDate(0, 0, i-days+1)
		out[i] = DayCount{Date: day.Format(domain.DayLayout), Label: dayLabel(day)}
		for _, t := range times {
			if sameDay(t, day, loc) {
				out[i].Value++
			}
		}
	}
	return out
}
