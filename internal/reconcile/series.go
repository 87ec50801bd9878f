package reconcile

import "time"

// DailyPoint is one day of a month chart.
type DailyPoint struct {
	Day    int     `json:"gun"`
	Label  string  `json:"tarih"` // dd.MM
	Actual float64 `json:"uretim"`
	Target float64 `json:"hedef"`
}

// MonthlyRow is one month of a year comparison.
type MonthlyRow struct {
	Month  time.Month `json:"ay"`
	Name   string     `json:"ayAdi"`
	Actual float64    `json:"uretim"`
	Target float64    `json:"hedef"`
	Ratio  float64    `json:"oran"`
}

// YearTotals summarizes a calendar year against the yearly target.
type YearTotals struct {
	Year        int     `json:"yil"`
	Actual      float64 `json:"toplam"`
	Target      float64 `json:"hedef"`
	Realization float64 `json:"oran"`
	Revenue     float64 `json:"gelir"`
	CO2         float64 `json:"co2"`
}

// MonthTotals summarizes a single month against its target.
type MonthTotals struct {
	Year        int        `json:"yil"`
	Month       time.Month `json:"ay"`
	Name        string     `json:"ayAdi"`
	Actual      float64    `json:"uretim"`
	Target      float64    `json:"hedef"`
	Realization float64    `json:"oran"`
	Difference  float64    `json:"fark"`
}

// DailySeries returns one point per day of the month with the summed
// yield of that day and the even daily share of the monthly target.
func DailySeries(records []Record, year int, month time.Month, t MonthlyTargets, loc *time.Location) []DailyPoint {
	if loc == nil {
		loc = time.UTC
	}
	days := DaysIn(year, month)
	daily := DailyTarget(t, year, month)

	points := make([]DailyPoint, days)
	for i := range points {
		d := time.Date(year, month, i+1, 0, 0, 0, 0, loc)
		points[i] = DailyPoint{Day: i + 1, Label: d.Format("02.01"), Target: daily}
	}

	for _, r := range records {
		lt := r.Date.In(loc)
		if lt.Year() != year || lt.Month() != month {
			continue
		}
		points[lt.Day()-1].Actual += r.Yield
	}
	return points
}

// MonthlyComparison returns twelve rows for year, January first.
func MonthlyComparison(records []Record, year int, t MonthlyTargets, loc *time.Location) []MonthlyRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]MonthlyRow, 12)
	for i := range rows {
		m := time.Month(i + 1)
		rows[i] = MonthlyRow{Month: m, Name: MonthName(m), Target: t.Get(m)}
	}
	for _, r := range records {
		lt := r.Date.In(loc)
		if lt.Year() != year {
			continue
		}
		rows[lt.Month()-1].Actual += r.Yield
	}
	for i := range rows {
		rows[i].Ratio = Realization(rows[i].Actual, rows[i].Target)
	}
	return rows
}

// YearSummary totals year against the plant's yearly target.
func YearSummary(records []Record, year int, yearly float64, loc *time.Location) YearTotals {
	agg := Sum(records, Window{Kind: WindowYear, Year: year}, loc)
	return YearTotals{
		Year:        year,
		Actual:      agg.TotalYield,
		Target:      yearly,
		Realization: Realization(agg.TotalYield, yearly),
		Revenue:     agg.TotalRevenue,
		CO2:         agg.TotalCO2,
	}
}

// MonthSummary totals one month against its target.
func MonthSummary(records []Record, year int, month time.Month, t MonthlyTargets, loc *time.Location) MonthTotals {
	agg := Sum(records, Window{Kind: WindowMonth, Year: year, Month: month}, loc)
	target := t.Get(month)
	return MonthTotals{
		Year:        year,
		Month:       month,
		Name:        MonthName(month),
		Actual:      agg.TotalYield,
		Target:      target,
		Realization: Realization(agg.TotalYield, target),
		Difference:  agg.TotalYield - target,
	}
}
