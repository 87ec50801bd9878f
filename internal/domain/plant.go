package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/reconcile"
)

// Plant is a solar plant (GES) in the santraller collection.
type Plant struct {
	ID                primitive.ObjectID        `json:"id" bson:"_id,omitempty"`
	Ad                string                    `json:"ad" bson:"ad" validate:"required"`
	KurulumTarihi     time.Time                 `json:"kurulumTarihi" bson:"kurulumTarihi"`
	Konum             GeoLocation               `json:"konum" bson:"konum"`
	Kapasite          float64                   `json:"kapasite" bson:"kapasite" validate:"gt=0"`
	PanelSayisi       int                       `json:"panelSayisi" bson:"panelSayisi" validate:"gte=0"`
	InverterSayisi    int                       `json:"inverterSayisi" bson:"inverterSayisi" validate:"gte=0"`
	YillikHedefUretim float64                   `json:"yillikHedefUretim" bson:"yillikHedefUretim" validate:"gte=0"`
	AylikHedefler     *reconcile.MonthlyTargets `json:"aylikHedefler,omitempty" bson:"aylikHedefler,omitempty"`
	MusteriID         string                    `json:"musteriId,omitempty" bson:"musteriId,omitempty"`
	Fotograflar       []string                  `json:"fotograflar,omitempty" bson:"fotograflar,omitempty"`
	TeknikOzellikler  TechSpecs                 `json:"teknikOzellikler" bson:"teknikOzellikler"`
	OlusturmaTarihi   time.Time                 `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
	GuncellenmeTarihi *time.Time                `json:"guncellenmeTarihi,omitempty" bson:"guncellenmeTarihi,omitempty"`
}

// GeoLocation is a plant's position.
type GeoLocation struct {
	Lat   float64 `json:"lat" bson:"lat" validate:"gte=-90,lte=90"`
	Lng   float64 `json:"lng" bson:"lng" validate:"gte=-180,lte=180"`
	Adres string  `json:"adres" bson:"adres"`
}

// TechSpecs are the plant's equipment details.
type TechSpecs struct {
	PanelTipi    string  `json:"panelTipi" bson:"panelTipi"`
	InverterTipi string  `json:"inverterTipi" bson:"inverterTipi"`
	PanelGucu    float64 `json:"panelGucu" bson:"panelGucu" validate:"gte=0"`                 // W
	SistemVerimi float64 `json:"sistemVerimi" bson:"sistemVerimi" validate:"gte=0,lte=100"` // %
}

// Targets returns the monthly targets in effect for the plant.
func (p Plant) Targets() reconcile.MonthlyTargets {
	return reconcile.EffectiveTargets(p.YillikHedefUretim, p.AylikHedefler)
}

// IDHex is the id as stored in references.
func (p Plant) IDHex() string {
	return p.ID.Hex()
}
