package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FaultStatus is the lifecycle state of a fault ticket.
type FaultStatus string

const (
	StatusOpen       FaultStatus = "acik"
	StatusInProgress FaultStatus = "devam-ediyor"
	StatusPending    FaultStatus = "beklemede"
	StatusResolved   FaultStatus = "cozuldu"
)

// FaultStatuses in display order.
var FaultStatuses = []FaultStatus{StatusOpen, StatusInProgress, StatusPending, StatusResolved}

// Valid reports whether s is a known status.
func (s FaultStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPending, StatusResolved:
		return true
	}
	return false
}

// Label is the Turkish name used in charts.
func (s FaultStatus) Label() string {
	switch s {
	case StatusOpen:
		return "Açık"
	case StatusInProgress:
		return "Devam Eden"
	case StatusPending:
		return "Beklemede"
	case StatusResolved:
		return "Çözüldü"
	}
	return string(s)
}

// Display is the short form printed in reports: first letter upper
// case and the first dash turned into a space ("Devam ediyor").
func (s FaultStatus) Display() string {
	return capitalize(strings.Replace(string(s), "-", " ", 1))
}

// Priority of a fault ticket.
type Priority string

const (
	PriorityLow    Priority = "dusuk"
	PriorityMedium Priority = "orta"
	PriorityHigh   Priority = "yuksek"
	PriorityUrgent Priority = "acil"
)

// Priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities, higher is more urgent.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// Label is the Turkish name used in charts.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Düşük"
	case PriorityMedium:
		return "Orta"
	case PriorityHigh:
		return "Yüksek"
	case PriorityUrgent:
		return "Acil"
	}
	return string(p)
}

// Display is the capitalized key printed in reports.
func (p Priority) Display() string {
	return capitalize(string(p))
}

// Fault is a ticket in the arizalar collection.
type Fault struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Baslik            string             `json:"baslik" bson:"baslik" validate:"required"`
	Aciklama          string             `json:"aciklama" bson:"aciklama"`
	Konum             string             `json:"konum" bson:"konum"`
	Saha              string             `json:"saha" bson:"saha" validate:"required"`
	SahaAdi           string             `json:"sahaAdi,omitempty" bson:"sahaAdi,omitempty"`
	Oncelik           Priority           `json:"oncelik" bson:"oncelik" validate:"required,oneof=dusuk orta yuksek acil"`
	Durum             FaultStatus        `json:"durum" bson:"durum" validate:"required,oneof=acik devam-ediyor beklemede cozuldu"`
	AtananKisi        string             `json:"atananKisi,omitempty" bson:"atananKisi,omitempty"`
	Fotograflar       []string           `json:"fotograflar,omitempty" bson:"fotograflar,omitempty"`
	OlusturmaTarihi   time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
	GuncellenmeTarihi *time.Time         `json:"guncellenmeTarihi,omitempty" bson:"guncellenmeTarihi,omitempty"`
	OlusturanKisi     string             `json:"olusturanKisi" bson:"olusturanKisi"`
	OlusturanKisiAdi  string             `json:"olusturanKisiAdi,omitempty" bson:"olusturanKisiAdi,omitempty"`
	Yorumlar          []Comment          `json:"yorumlar,omitempty" bson:"yorumlar,omitempty"`
	Cozum             *Resolution        `json:"cozum,omitempty" bson:"cozum,omitempty"`
}

// Comment on a fault.
type Comment struct {
	ID           string    `json:"id" bson:"id"`
	KullaniciID  string    `json:"kullaniciId" bson:"kullaniciId"`
	KullaniciAdi string    `json:"kullaniciAdi" bson:"kullaniciAdi"`
	Mesaj        string    `json:"mesaj" bson:"mesaj" validate:"required"`
	Tarih        time.Time `json:"tarih" bson:"tarih"`
}

// Resolution is recorded when a fault is closed.
type Resolution struct {
	Aciklama         string    `json:"aciklama" bson:"aciklama" validate:"required"`
	TamamlanmaTarihi time.Time `json:"tamamlanmaTarihi" bson:"tamamlanmaTarihi"`
	TamamlayanKisi   string    `json:"tamamlayanKisi" bson:"tamamlayanKisi"`
	Fotograflar      []string  `json:"fotograflar,omitempty" bson:"fotograflar,omitempty"`
	Malzemeler       []string  `json:"malzemeler,omitempty" bson:"malzemeler,omitempty"`
}

// ShortID is the last six characters of the id in upper case, used as
// the ticket number in reports.
func (f Fault) ShortID() string {
	hex := f.ID.Hex()
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}
	return strings.ToUpper(hex)
}

// ResolutionTime returns how long the fault took to resolve. ok is false
// for faults without a resolution.
func (f Fault) ResolutionTime() (d time.Duration, ok bool) {
	if f.Durum != StatusResolved || f.Cozum == nil {
		return 0, false
	}
	return f.Cozum.TamamlanmaTarihi.Sub(f.OlusturmaTarihi), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
