package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a user account.
type Role string

const (
	RoleManager    Role = "yonetici"
	RoleTechnician Role = "tekniker"
	RoleEngineer   Role = "muhendis"
	RoleCustomer   Role = "musteri"
	RoleGuard      Role = "bekci"
)

// Roles lists every role in display order.
var Roles = []Role{RoleManager, RoleTechnician, RoleEngineer, RoleCustomer, RoleGuard}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleTechnician, RoleEngineer, RoleCustomer, RoleGuard:
		return true
	}
	return false
}

// Label returns the Turkish display name.
func (r Role) Label() string {
	switch r {
	case RoleManager:
		return "Yönetici"
	case RoleTechnician:
		return "Tekniker"
	case RoleEngineer:
		return "Mühendis"
	case RoleCustomer:
		return "Müşteri"
	case RoleGuard:
		return "Bekçi"
	}
	return string(r)
}

// User is an account in the kullanicilar collection.
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Ad              string             `json:"ad" bson:"ad" validate:"required"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Telefon         string             `json:"telefon,omitempty" bson:"telefon,omitempty"`
	Rol             Role               `json:"rol" bson:"rol" validate:"required,role"`
	FotoURL         string             `json:"fotoURL,omitempty" bson:"fotoURL,omitempty"`
	Sahalar         []string           `json:"sahalar,omitempty" bson:"sahalar,omitempty"`
	Sirket          string             `json:"sirket,omitempty" bson:"sirket,omitempty"`
	Adres           string             `json:"adres,omitempty" bson:"adres,omitempty"`
	PasswordHash    string             `json:"-" bson:"sifreHash,omitempty"`
	FirebaseUID     string             `json:"-" bson:"firebaseUid,omitempty"`
	OlusturmaTarihi time.Time          `json:"olusturmaTarihi" bson:"olusturmaTarihi"`
}

// Ref returns the short identity stored on documents the user creates.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID.Hex(), Ad: u.Ad, Rol: u.Rol}
}

// UserRef identifies the creator or inspector of a document.
type UserRef struct {
	ID  string `json:"id" bson:"id"`
	Ad  string `json:"ad" bson:"ad"`
	Rol Role   `json:"rol,omitempty" bson:"rol,omitempty"`
}
