package service

import (
	"context"
	"errors"
	"fmt"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/auth"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (access.Principal, error)
}

// JWTAuthenticator accepts tokens issued by UserService.Login. The user
// is reloaded so role and site changes apply before the token expires.
type JWTAuthenticator struct {
	secret string
	users  repository.UserRepository
}

// NewJWTAuthenticator creates the local token authenticator.
func NewJWTAuthenticator(secret string, users repository.UserRepository) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, users: users}
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	claims, err := auth.ValidateToken(token, a.secret)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}
	u, err := a.users.Get(ctx, claims.UserID)
	return loadPrincipal(u, err)
}

// TokenVerifier checks provider ID tokens. *auth.FirebaseVerifier
// satisfies it.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (uid, email string, err error)
}

// FirebaseAuthenticator accepts Firebase ID tokens and maps the uid, or
// on first sign in the e-mail, to an account.
type FirebaseAuthenticator struct {
	verifier TokenVerifier
	users    repository.UserRepository
}

// NewFirebaseAuthenticator creates the provider token authenticator.
func NewFirebaseAuthenticator(verifier TokenVerifier, users repository.UserRepository) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier, users: users}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	uid, email, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}

	u, err := a.users.GetByFirebaseUID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) && email != "" {
		u, err = a.users.GetByEmail(ctx, email)
		if err == nil {
			u.FirebaseUID = uid
			if uerr := a.users.Update(ctx, u); uerr != nil {
				return access.Principal{}, uerr
			}
		}
	}
	return loadPrincipal(u, err)
}

func loadPrincipal(u *domain.User, err error) (access.Principal, error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return access.Principal{}, fmt.Errorf("account not found: %w", domain.ErrUnauthorized)
		}
		return access.Principal{}, err
	}
	return PrincipalOf(u), nil
}
