package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/reconcile"
)

// DayLayout is the format of Production.Gun.
const DayLayout = "2006-01-02"

// Production is a daily production record in the uretimVerileri
// collection.
type Production struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SantralID         string             `json:"santralId" bson:"santralId"`
	Tarih             time.Time          `json:"tarih" bson:"tarih"`
	Gun               string             `json:"gun" bson:"gun"`
	GunlukUretim      float64            `json:"gunlukUretim" bson:"gunlukUretim"` // kWh
	AnlikGuc          float64            `json:"anlikGuc" bson:"anlikGuc"`         // kW
	PerformansOrani   float64            `json:"performansOrani" bson:"performansOrani"`
	Gelir             float64            `json:"gelir" bson:"gelir"`
	TasarrufEdilenCO2 float64            `json:"tasarrufEdilenCO2" bson:"tasarrufEdilenCO2"`
	Hava              Weather            `json:"hava" bson:"hava"`
	Notlar            string             `json:"notlar,omitempty" bson:"notlar,omitempty"`
	OlusturanKisi     UserRef            `json:"olusturanKisi" bson:"olusturanKisi"`
	OlusturmaTarihi   time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
}

// Weather placeholders filled by the operator when known.
type Weather struct {
	Sicaklik  float64 `json:"sicaklik" bson:"sicaklik"`
	Nem       float64 `json:"nem" bson:"nem"`
	Radyasyon float64 `json:"radyasyon" bson:"radyasyon"`
}

// Record returns the fields the aggregator works on.
func (p Production) Record() reconcile.Record {
	return reconcile.Record{
		Date:    p.Tarih,
		Yield:   p.GunlukUretim,
		Revenue: p.Gelir,
		CO2:     p.TasarrufEdilenCO2,
	}
}

// Records maps a slice of productions to aggregator records.
func Records(items []Production) []reconcile.Record {
	out := make([]reconcile.Record, len(items))
	for i, p := range items {
		out[i] = p.Record()
	}
	return out
}
