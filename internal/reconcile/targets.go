// Package reconcile computes production targets and compares them with
// recorded actuals. Everything here is a pure function over its inputs.
package reconcile

import (
	"math"
	"time"
)

// seasonalRatios holds the share of the yearly production expected in
// each month, in percent, January first. The values sum to 100 within
// rounding.
var seasonalRatios = [12]float64{
	5.258,  // ocak
	5.910,  // subat
	7.909,  // mart
	9.281,  // nisan
	10.751, // mayis
	11.182, // haziran
	10.947, // temmuz
	10.918, // agustos
	9.825,  // eylul
	7.698,  // ekim
	5.733,  // kasim
	4.587,  // aralik
}

var monthKeys = [12]string{
	"ocak", "subat", "mart", "nisan", "mayis", "haziran",
	"temmuz", "agustos", "eylul", "ekim", "kasim", "aralik",
}

var monthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Ratio returns the seasonal percentage for m.
func Ratio(m time.Month) float64 {
	if m < time.January || m > time.December {
		return 0
	}
	return seasonalRatios[m-1]
}

// MonthKey returns the document key for m ("ocak", "subat", ...).
func MonthKey(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthKeys[m-1]
}

// MonthName returns the Turkish display name for m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthlyTargets is the per-month production target of a plant in kWh.
type MonthlyTargets struct {
	Ocak    float64 `json:"ocak" bson:"ocak"`
	Subat   float64 `json:"subat" bson:"subat"`
	Mart    float64 `json:"mart" bson:"mart"`
	Nisan   float64 `json:"nisan" bson:"nisan"`
	Mayis   float64 `json:"mayis" bson:"mayis"`
	Haziran float64 `json:"haziran" bson:"haziran"`
	Temmuz  float64 `json:"temmuz" bson:"temmuz"`
	Agustos float64 `json:"agustos" bson:"agustos"`
	Eylul   float64 `json:"eylul" bson:"eylul"`
	Ekim    float64 `json:"ekim" bson:"ekim"`
	Kasim   float64 `json:"kasim" bson:"kasim"`
	Aralik  float64 `json:"aralik" bson:"aralik"`
}

func (t *MonthlyTargets) slots() [12]*float64 {
	return [12]*float64{
		&t.Ocak, &t.Subat, &t.Mart, &t.Nisan, &t.Mayis, &t.Haziran,
		&t.Temmuz, &t.Agustos, &t.Eylul, &t.Ekim, &t.Kasim, &t.Aralik,
	}
}

// Get returns the target for m.
func (t MonthlyTargets) Get(m time.Month) float64 {
	if m < time.January || m > time.December {
		return 0
	}
	return *t.slots()[m-1]
}

// Set replaces the target for m.
func (t *MonthlyTargets) Set(m time.Month, v float64) {
	if m < time.January || m > time.December {
		return
	}
	*t.slots()[m-1] = v
}

// Values returns the targets January first.
func (t MonthlyTargets) Values() [12]float64 {
	var out [12]float64
	for i, p := range t.slots() {
		out[i] = *p
	}
	return out
}

// Total is the sum of all twelve months.
func (t MonthlyTargets) Total() float64 {
	sum := 0.0
	for _, v := range t.Values() {
		sum += v
	}
	return sum
}

// DistributeYearly spreads a yearly target over the months using the
// seasonal ratio table. Each month is rounded to a whole kWh. Negative
// input is treated as zero.
func DistributeYearly(yearly float64) MonthlyTargets {
	var t MonthlyTargets
	if yearly <= 0 || math.IsNaN(yearly) {
		return t
	}
	for i, p := range t.slots() {
		*p = math.Round(yearly * seasonalRatios[i] / 100)
	}
	return t
}

// EffectiveTargets returns override when set, otherwise the targets
// derived from yearly.
func EffectiveTargets(yearly float64, override *MonthlyTargets) MonthlyTargets {
	if override != nil {
		return *override
	}
	return DistributeYearly(yearly)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DailyTarget divides the month's target evenly over its days.
func DailyTarget(t MonthlyTargets, year int, month time.Month) float64 {
	days := DaysIn(year, month)
	if days == 0 {
		return 0
	}
	return t.Get(month) / float64(days)
}

// WindowTarget returns the expected production for w.
//
//	day   -> monthly target / days in month
//	month -> monthly target
//	year  -> sum of the monthly targets
//	all   -> yearly target
func WindowTarget(yearly float64, override *MonthlyTargets, w Window) float64 {
	t := EffectiveTargets(yearly, override)
	switch w.Kind {
	case WindowDay:
		return DailyTarget(t, w.Year, w.Month)
	case WindowMonth:
		return t.Get(w.Month)
	case WindowYear:
		return t.Total()
	default:
		if yearly < 0 {
			return 0
		}
		return yearly
	}
}
