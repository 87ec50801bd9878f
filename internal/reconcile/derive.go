package reconcile

// Pricing holds the constants used to derive money and emission figures
// from a yield.
type Pricing struct {
	UnitPrice float64 // TL per kWh
	FeeRatio  float64 // distribution fee share of the gross
	CO2Factor float64 // kg per kWh
}

// DefaultPricing matches the tariff the records have been entered with.
var DefaultPricing = Pricing{UnitPrice: 2.5, FeeRatio: 0.2, CO2Factor: 0.5}

// Derived is what a single day's yield turns into.
type Derived struct {
	Gross       float64 `json:"brutGelir"`
	Fee         float64 `json:"dagitimBedeli"`
	Revenue     float64 `json:"gelir"`
	CO2         float64 `json:"tasarrufEdilenCO2"`
	Performance float64 `json:"performansOrani"`
}

// DeriveRecord computes revenue, CO2 offset and the day's performance
// ratio for yield kWh on a plant of capacity kWp.
func DeriveRecord(yield, capacity float64, p Pricing) Derived {
	gross := yield * p.UnitPrice
	fee := gross * p.FeeRatio
	return Derived{
		Gross:       gross,
		Fee:         fee,
		Revenue:     gross - fee,
		CO2:         yield * p.CO2Factor,
		Performance: Performance(yield, capacity, 1),
	}
}
