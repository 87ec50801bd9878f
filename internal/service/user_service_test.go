package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edeon_enerji/internal/domain"
)

func TestUserCreateAndLogin(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	u, err := f.svc.Users.Create(ctx, manager, UserInput{Ad: "Ali", Email: " Ali@Example.com ", Sifre: "gizli123", Rol: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", u.Email)
	assert.NotNil(t, u.Sahalar)
	assert.NotEqual(t, "gizli123", u.PasswordHash)

	res, err := f.svc.Users.Login(ctx, "ALI@example.com", "gizli123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, u.ID, res.User.ID)

	_, err = f.svc.Users.Login(ctx, "ali@example.com", "yanlis")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.svc.Users.Login(ctx, "yok@example.com", "gizli123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.Users.Create(ctx, manager, UserInput{Ad: "Ali 2", Email: "ali@example.com", Sifre: "gizli123", Rol: domain.RoleTechnician})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Users.Create(ctx, manager, UserInput{Ad: "Kısa", Email: "k@example.com", Sifre: "123", Rol: domain.RoleTechnician})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Users.Create(ctx, technician, UserInput{Ad: "X", Email: "x@example.com", Sifre: "gizli123", Rol: domain.RoleTechnician})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUpdate_NormalizesEmail(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	u, err := f.svc.Users.Create(ctx, manager, UserInput{Ad: "Ayşe", Email: "ayse@example.com", Sifre: "gizli123", Rol: domain.RoleTechnician})
	require.NoError(t, err)

	updated, err := f.svc.Users.Update(ctx, manager, u.ID.Hex(), UserInput{Ad: "  Ayşe Yılmaz ", Email: "  Ayse.Yilmaz@Example.com", Rol: domain.RoleTechnician})
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", updated.Ad)
	assert.Equal(t, "ayse.yilmaz@example.com", updated.Email)
}

func TestJWTAuthenticator_ReloadsUser(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	u, err := f.svc.Users.Create(ctx, manager, UserInput{Ad: "Ali", Email: "ali@example.com", Sifre: "gizli123", Rol: domain.RoleCustomer, Sahalar: []string{"s1"}})
	require.NoError(t, err)
	res, err := f.svc.Users.Login(ctx, "ali@example.com", "gizli123")
	require.NoError(t, err)

	authn := NewJWTAuthenticator("test-secret", f.users)
	p, err := authn.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), p.UserID)
	assert.Equal(t, []string{"s1"}, p.Sites)

	// a site granted after login is visible without a new token
	require.NoError(t, f.users.AddSite(ctx, u.ID.Hex(), "s2"))
	p, err = authn.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, p.Sites)

	require.NoError(t, f.users.Delete(ctx, u.ID.Hex()))
	_, err = authn.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = NewJWTAuthenticator("other", f.users).Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

type stubVerifier struct {
	uid, email string
	err        error
}

func (v stubVerifier) Verify(context.Context, string) (string, string, error) {
	return v.uid, v.email, v.err
}

func TestFirebaseAuthenticator_LinksByEmail(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	u := f.addUser(domain.User{Ad: "Ali", Email: "ali@example.com", Rol: domain.RoleEngineer})

	authn := NewFirebaseAuthenticator(stubVerifier{uid: "fb-1", email: "ali@example.com"}, f.users)
	p, err := authn.Authenticate(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), p.UserID)
	assert.Equal(t, domain.RoleEngineer, p.Role)

	linked, err := f.users.GetByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, linked.ID)

	_, err = NewFirebaseAuthenticator(stubVerifier{uid: "fb-2", email: "yok@example.com"}, f.users).Authenticate(ctx, "t")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = NewFirebaseAuthenticator(stubVerifier{err: errors.New("expired")}, f.users).Authenticate(ctx, "t")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserProfileAndPassword(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	u, err := f.svc.Users.Create(ctx, manager, UserInput{Ad: "Ali", Email: "ali@example.com", Sifre: "gizli123", Rol: domain.RoleTechnician})
	require.NoError(t, err)
	self := PrincipalOf(u)

	updated, err := f.svc.Users.UpdateProfile(ctx, self, ProfileInput{Ad: " Ali Veli ", Telefon: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Ali Veli", updated.Ad)

	err = f.svc.Users.ChangePassword(ctx, self, "yanlis", "yenisifre")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, f.svc.Users.ChangePassword(ctx, self, "gizli123", "yenisifre"))
	_, err = f.svc.Users.Login(ctx, "ali@example.com", "yenisifre")
	assert.NoError(t, err)
}

func TestUserDelete(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	admin := f.addUser(domain.User{Ad: "Y", Email: "y@example.com", Rol: domain.RoleManager})
	other := f.addUser(domain.User{Ad: "T", Email: "t@example.com", Rol: domain.RoleTechnician})
	p := PrincipalOf(&admin)

	assert.ErrorIs(t, f.svc.Users.Delete(ctx, p, admin.ID.Hex()), domain.ErrValidation)
	require.NoError(t, f.svc.Users.Delete(ctx, p, other.ID.Hex()))

	list, err := f.svc.Users.List(ctx, p, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = f.svc.Users.List(ctx, p, "patron")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
