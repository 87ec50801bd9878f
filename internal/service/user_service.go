package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/auth"
	"edeon_enerji/pkg/logger"
)

const minPasswordLength = 6

// UserService manages accounts and issues session tokens.
type UserService struct {
	*env
	repo        repository.UserRepository
	secret      string
	issuer      string
	expiryHours int
}

// UserInput creates or updates an account. Sifre is optional on update.
type UserInput struct {
	Ad      string      `json:"ad" validate:"required"`
	Email   string      `json:"email" validate:"required,email"`
	Sifre   string      `json:"sifre"`
	Rol     domain.Role `json:"rol" validate:"required,role"`
	Telefon string      `json:"telefon"`
	Sahalar []string    `json:"sahalar"`
	Sirket  string      `json:"sirket"`
	Adres   string      `json:"adres"`
}

func (in *UserInput) normalize() {
	in.Ad = strings.TrimSpace(in.Ad)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// ProfileInput is what a user may change on their own account.
type ProfileInput struct {
	Ad      string `json:"ad" validate:"required"`
	Telefon string `json:"telefon"`
	FotoURL string `json:"fotoURL"`
}

// LoginResult is a successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"kullanici"`
}

// PrincipalOf maps an account to the caller identity.
func PrincipalOf(u *domain.User) access.Principal {
	return access.Principal{
		UserID: u.ID.Hex(),
		Name:   u.Ad,
		Email:  u.Email,
		Role:   u.Rol,
		Sites:  u.Sahalar,
	}
}

// Login checks the password and returns a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("login %s: %w", email, domain.ErrUnauthorized)
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, fmt.Errorf("login %s: no local password: %w", email, domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("login %s: %w", email, domain.ErrUnauthorized)
	}

	p := PrincipalOf(u)
	token, expires, err := auth.GenerateToken(s.secret, s.issuer, auth.Identity{
		UserID: p.UserID,
		Name:   p.Name,
		Email:  p.Email,
		Role:   string(p.Role),
		Sites:  p.Sites,
	}, s.expiryHours)
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("✓ Login: %s (%s)", u.Email, u.Rol))
	return &LoginResult{Token: token, ExpiresAt: expires, User: u}, nil
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, p access.Principal) (*domain.User, error) {
	return s.repo.Get(ctx, p.UserID)
}

// UpdateProfile edits the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, p access.Principal, in ProfileInput) (*domain.User, error) {
	in.Ad = strings.TrimSpace(in.Ad)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	u, err := s.repo.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	u.Ad = in.Ad
	u.Telefon = in.Telefon
	u.FotoURL = in.FotoURL
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile %s: %w", p.UserID, err)
	}
	return u, nil
}

// ChangePassword replaces the caller's password after checking the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, p access.Principal, current, next string) error {
	u, err := s.repo.Get(ctx, p.UserID)
	if err != nil {
		return err
	}
	if u.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
			return domain.NewValidationError("mevcutSifre", "Mevcut şifre hatalı")
		}
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.repo.Update(ctx, u)
}

// List returns accounts, optionally of one role.
func (s *UserService) List(ctx context.Context, p access.Principal, role domain.Role) ([]domain.User, error) {
	if err := p.Require(access.ManageUsers); err != nil {
		return nil, err
	}
	if role != "" && !role.Valid() {
		return nil, domain.NewValidationError("rol", "Geçersiz rol")
	}
	return s.repo.List(ctx, role)
}

// Create stores an account with a bcrypt password hash.
func (s *UserService) Create(ctx context.Context, p access.Principal, in UserInput) (*domain.User, error) {
	if err := p.Require(access.ManageUsers); err != nil {
		return nil, err
	}
	in.normalize()
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Sifre)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		ID:              primitive.NilObjectID,
		Ad:              in.Ad,
		Email:           in.Email,
		Telefon:         in.Telefon,
		Rol:             in.Rol,
		Sirket:          in.Sirket,
		Adres:           in.Adres,
		PasswordHash:    hash,
		OlusturmaTarihi: s.now(),
	}
	if in.Rol == domain.RoleCustomer {
		u.Sahalar = in.Sahalar
		if u.Sahalar == nil {
			u.Sahalar = []string{}
		}
	}

	if err := s.repo.Insert(ctx, &u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("email", "Bu e-posta adresi zaten kullanılıyor")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Info(fmt.Sprintf("✓ User created: %s (%s)", u.Email, u.Rol))
	return &u, nil
}

// Update edits an account. An empty password keeps the current one.
func (s *UserService) Update(ctx context.Context, p access.Principal, id string, in UserInput) (*domain.User, error) {
	if err := p.Require(access.ManageUsers); err != nil {
		return nil, err
	}
	in.normalize()
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Ad = in.Ad
	u.Email = in.Email
	u.Telefon = in.Telefon
	u.Rol = in.Rol
	u.Sirket = in.Sirket
	u.Adres = in.Adres
	u.Sahalar = nil
	if in.Rol == domain.RoleCustomer {
		u.Sahalar = in.Sahalar
		if u.Sahalar == nil {
			u.Sahalar = []string{}
		}
	}
	if in.Sifre != "" {
		hash, err := hashPassword(in.Sifre)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	s.changed()
	return u, nil
}

// Delete removes an account. Managers cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.ManageUsers); err != nil {
		return err
	}
	if id == p.UserID {
		return domain.NewValidationError("id", "Kendi hesabınızı silemezsiniz")
	}
	return s.repo.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.NewValidationError("sifre", fmt.Sprintf("Şifre en az %d karakter olmalıdır", minPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
