package reconcile

// SunHours is the assumed number of full-power hours per day.
const SunHours = 5.0

// Band is the qualitative state of a realization ratio.
type Band string

const (
	BandExceeded Band = "exceeded"
	BandNear     Band = "near"
	BandBelow    Band = "below"
)

// Label returns the Turkish text shown next to the band.
func (b Band) Label() string {
	switch b {
	case BandExceeded:
		return "Hedef aşıldı"
	case BandNear:
		return "Hedefe yakın"
	default:
		return "Hedefin altında"
	}
}

// Comparison is an aggregate set against its target and the theoretical
// maximum of the plant.
type Comparison struct {
	Actual      float64 `json:"gerceklesen"`
	Target      float64 `json:"hedef"`
	Theoretical float64 `json:"teorikUretim"`
	Realization float64 `json:"hedefGerceklesme"`
	Performance float64 `json:"performans"`
	Band        Band    `json:"durum"`
}

// Realization returns actual/target in percent, or 0 without a target.
func Realization(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return actual / target * 100
}

// Theoretical is the production of capacity kWp running SunHours a day
// for days days.
func Theoretical(capacity float64, days int) float64 {
	if capacity <= 0 || days <= 0 {
		return 0
	}
	return capacity * SunHours * float64(days)
}

// Performance returns actual over the theoretical maximum in percent,
// or 0 when the maximum is zero.
func Performance(actual, capacity float64, days int) float64 {
	theo := Theoretical(capacity, days)
	if theo <= 0 {
		return 0
	}
	return actual / theo * 100
}

// Classify bands a realization percentage.
func Classify(realization float64) Band {
	switch {
	case realization >= 100:
		return BandExceeded
	case realization >= 80:
		return BandNear
	default:
		return BandBelow
	}
}

// Compare sets agg against target and the plant capacity. It never
// fails; missing denominators produce zero ratios.
func Compare(agg Aggregate, target, capacity float64) Comparison {
	realization := Realization(agg.TotalYield, target)
	return Comparison{
		Actual:      agg.TotalYield,
		Target:      target,
		Theoretical: Theoretical(capacity, agg.Count),
		Realization: realization,
		Performance: Performance(agg.TotalYield, capacity, agg.Count),
		Band:        Classify(realization),
	}
}
