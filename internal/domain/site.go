package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Site is an operating location in the sahalar collection.
type Site struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Ad              string             `json:"ad" bson:"ad" validate:"required"`
	Konum           string             `json:"konum" bson:"konum"`
	Kapasite        string             `json:"kapasite" bson:"kapasite"`
	Aciklama        string             `json:"aciklama,omitempty" bson:"aciklama,omitempty"`
	OlusturmaTarihi time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
}

// StockItem is a spare part or consumable in the stoklar collection.
type StockItem struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Ad                string             `json:"ad" bson:"ad" validate:"required"`
	Kategori          string             `json:"kategori" bson:"kategori"`
	Miktar            float64            `json:"miktar" bson:"miktar" validate:"gte=0"`
	Birim             string             `json:"birim" bson:"birim" validate:"required"`
	KritikSeviye      float64            `json:"kritikSeviye" bson:"kritikSeviye" validate:"gte=0"`
	SahaID            string             `json:"sahaId,omitempty" bson:"sahaId,omitempty"`
	Notlar            string             `json:"notlar,omitempty" bson:"notlar,omitempty"`
	OlusturmaTarihi   time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
	GuncellenmeTarihi *time.Time         `json:"guncellenmeTarihi,omitempty" bson:"guncellenmeTarihi,omitempty"`
}

// Critical is true once the quantity has fallen to the critical level.
func (s StockItem) Critical() bool {
	return s.Miktar <= s.KritikSeviye
}

// WorkReport is a record of work done on site (isRaporlari).
type WorkReport struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Baslik          string             `json:"baslik" bson:"baslik" validate:"required"`
	Aciklama        string             `json:"aciklama" bson:"aciklama"`
	YapilanIsler    string             `json:"yapilanIsler" bson:"yapilanIsler" validate:"required"`
	Saha            string             `json:"saha" bson:"saha" validate:"required"`
	Tarih           time.Time          `json:"tarih" bson:"tarih"`
	BaslangicSaati  string             `json:"baslangicSaati" bson:"baslangicSaati"`
	BitisSaati      string             `json:"bitisSaati" bson:"bitisSaati"`
	Fotograflar     []string           `json:"fotograflar" bson:"fotograflar"`
	OlusturanKisi   UserRef            `json:"olusturanKisi" bson:"olusturanKisi"`
	Malzemeler      []string           `json:"malzemeler,omitempty" bson:"malzemeler,omitempty"`
	OlusturmaTarihi time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifyFault   NotificationType = "ariza"
	NotifyComment NotificationType = "yorum"
	NotifyStatus  NotificationType = "durum"
	NotifySystem  NotificationType = "sistem"
)

// Notification is a message for one user (bildirimler).
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Baslik      string             `json:"baslik" bson:"baslik"`
	Mesaj       string             `json:"mesaj" bson:"mesaj"`
	Tarih       time.Time          `json:"tarih" bson:"tarih"`
	Okundu      bool               `json:"okundu" bson:"okundu"`
	Tip         NotificationType   `json:"tip" bson:"tip"`
	Link        string             `json:"link,omitempty" bson:"link,omitempty"`
	KullaniciID string             `json:"kullaniciId" bson:"kullaniciId"`
}
