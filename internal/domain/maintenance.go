package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceKind separates mechanical and electrical inspections. Each
// kind lives in its own collection.
type MaintenanceKind string

const (
	KindMechanical MaintenanceKind = "mekanik"
	KindElectrical MaintenanceKind = "elektrik"
)

// Valid reports whether k is a known kind.
func (k MaintenanceKind) Valid() bool {
	return k == KindMechanical || k == KindElectrical
}

// Label is the Turkish name used in summaries.
func (k MaintenanceKind) Label() string {
	switch k {
	case KindMechanical:
		return "Mekanik"
	case KindElectrical:
		return "Elektrik"
	}
	return string(k)
}

// Category is one checklist section of an inspection.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var mechanicalCategories = []Category{
	{"cevreselDurum", "Çevresel Durum"},
	{"araziDurumu", "Arazi ve Toprak"},
	{"tasiyiciYapilar", "Taşıyıcı Yapılar"},
	{"kazikVeKirisler", "Kazıklar ve Kirişler"},
	{"pvModulleri", "PV Modülleri"},
	{"elektrikSistemleri", "Elektrik Sistemleri"},
}

var electricalCategories = []Category{
	{"ogSistemleri", "OG Sistemleri"},
	{"trafolar", "Trafolar"},
	{"agDagitimPanosu", "AG Dağıtım Panosu"},
	{"invertorler", "İnvertörler"},
	{"toplamaKutulari", "Toplama Kutuları"},
	{"pvModulleri", "PV Modülleri"},
	{"kabloTasima", "Kablolar"},
	{"aydinlatmaGuvenlik", "Aydınlatma ve Güvenlik"},
	{"topraklamaSistemleri", "Topraklama Sistemleri"},
}

// Categories returns a copy of the checklist sections of k.
func (k MaintenanceKind) Categories() []Category {
	var src []Category
	switch k {
	case KindMechanical:
		src = mechanicalCategories
	case KindElectrical:
		src = electricalCategories
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// CategoryLabel returns the label of key in k, or key itself.
func (k MaintenanceKind) CategoryLabel(key string) string {
	for _, c := range k.Categories() {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

// HasCategory reports whether key is a section of k.
func (k MaintenanceKind) HasCategory(key string) bool {
	for _, c := range k.Categories() {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Maintenance is a mechanical or electrical inspection record.
type Maintenance struct {
	ID              primitive.ObjectID           `json:"id" bson:"_id,omitempty"`
	Tur             MaintenanceKind              `json:"tur" bson:"tur"`
	SahaID          string                       `json:"sahaId" bson:"sahaId" validate:"required"`
	Tarih           time.Time                    `json:"tarih" bson:"tarih"`
	KontrolEden     UserRef                      `json:"kontrolEden" bson:"kontrolEden"`
	Fotograflar     []string                     `json:"fotograflar" bson:"fotograflar"`
	Durumlar        map[string]map[string]bool   `json:"durumlar" bson:"durumlar"`
	Aciklamalar     map[string]map[string]string `json:"aciklamalar,omitempty" bson:"aciklamalar,omitempty"`
	GenelNotlar     string                       `json:"genelNotlar,omitempty" bson:"genelNotlar,omitempty"`
	OlusturmaTarihi time.Time                    `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
}

// HasIssue is true when any checklist item in any section failed.
func (m Maintenance) HasIssue() bool {
	for _, items := range m.Durumlar {
		for _, ok := range items {
			if !ok {
				return true
			}
		}
	}
	return false
}

// Issue is a failed checklist item.
type Issue struct {
	Category string `json:"kategori"`
	Label    string `json:"kategoriAdi"`
	Item     string `json:"madde"`
	Note     string `json:"aciklama,omitempty"`
}

// Issues lists the failed items in category order then item name.
func (m Maintenance) Issues() []Issue {
	var out []Issue
	for _, c := range m.Tur.Categories() {
		items := m.Durumlar[c.Key]
		names := make([]string, 0, len(items))
		for name, ok := range items {
			if !ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, Issue{
				Category: c.Key,
				Label:    c.Label,
				Item:     name,
				Note:     m.Aciklamalar[c.Key][name],
			})
		}
	}
	return out
}

// CheckCategories returns a ValidationError when Durumlar names a section
// that does not belong to the record's kind.
func (m Maintenance) CheckCategories() error {
	if !m.Tur.Valid() {
		return NewValidationError("tur", "Geçersiz bakım türü")
	}
	if len(m.Durumlar) == 0 {
		return NewValidationError("durumlar", "En az bir kontrol kategorisi girilmelidir")
	}
	for key := range m.Durumlar {
		if !m.Tur.HasCategory(key) {
			return NewValidationError("durumlar."+key, "Bu bakım türünde böyle bir kategori yok")
		}
	}
	for key := range m.Aciklamalar {
		if !m.Tur.HasCategory(key) {
			return NewValidationError("aciklamalar."+key, "Bu bakım türünde böyle bir kategori yok")
		}
	}
	return nil
}
