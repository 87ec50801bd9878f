package reconcile

import "time"

// Record is the slice of a production record the aggregator reads.
type Record struct {
	Date    time.Time
	Yield   float64 // kWh
	Revenue float64 // TL
	CO2     float64 // kg
}

// Aggregate is the sum of the records inside a window.
type Aggregate struct {
	TotalYield   float64 `json:"toplamUretim"`
	TotalRevenue float64 `json:"toplamGelir"`
	TotalCO2     float64 `json:"toplamCO2"`
	Count        int     `json:"kayitSayisi"`
	AverageYield float64 `json:"ortalamaUretim"`
}

// Sum aggregates the records of w. The input slice is not modified and
// an empty window yields a zero Aggregate.
func Sum(records []Record, w Window, loc *time.Location) Aggregate {
	var agg Aggregate
	for _, r := range records {
		if !w.Contains(r.Date, loc) {
			continue
		}
		agg.TotalYield += r.Yield
		agg.TotalRevenue += r.Revenue
		agg.TotalCO2 += r.CO2
		agg.Count++
	}
	if agg.Count > 0 {
		agg.AverageYield = agg.TotalYield / float64(agg.Count)
	}
	return agg
}

// Filter returns the records inside w, preserving order.
func Filter(records []Record, w Window, loc *time.Location) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date, loc) {
			out = append(out, r)
		}
	}
	return out
}
