package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/security"
)

type authFixture struct {
	service    *AuthService
	identities *fakeIdentityRepo
	sessions   *fakeSessionRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	identities := newFakeIdentityRepo()
	sessions := newFakeSessionRepo()
	hasher := security.NewPasswordHasher(4)
	return &authFixture{
		service:    NewAuthService(identities, sessions, hasher, 7*24*time.Hour, zerolog.Nop()),
		identities: identities,
		sessions:   sessions,
	}
}

func (fx *authFixture) register(t *testing.T, role string) *identity.Identity {
	t.Helper()
	input := RegisterInput{
		Name:                 "Test User",
		Email:                "user-" + role + "@example.com",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
		Role:                 role,
	}
	if role == "recruiter" {
		input.CompanyName = "PT Maju"
	}
	created, err := fx.service.Register(context.Background(), input)
	require.NoError(t, err)
	return created
}

func TestRegisterSeekerIsApprovedImmediately(t *testing.T) {
	fx := newAuthFixture(t)

	created := fx.register(t, "seeker")
	assert.Equal(t, identity.RoleSeeker, created.Role)
	assert.True(t, created.Approved)
}

func TestRegisterDefaultsToSeeker(t *testing.T) {
	fx := newAuthFixture(t)

	created, err := fx.service.Register(context.Background(), RegisterInput{
		Name:                 "No Role",
		Email:                "norole@example.com",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleSeeker, created.Role)
	assert.True(t, created.Approved)
}

func TestRegisterRecruiterStartsUnapproved(t *testing.T) {
	fx := newAuthFixture(t)

	created := fx.register(t, "recruiter")
	assert.Equal(t, identity.RoleRecruiter, created.Role)
	assert.False(t, created.Approved)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Register(context.Background(), RegisterInput{
		Name:                 "Sneaky",
		Email:                "sneaky@example.com",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
		Role:                 "admin",
	})
	assert.True(t, common.Is(err, common.CodeValidation))
}

func TestRegisterValidation(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Register(context.Background(), RegisterInput{
		Name:                 "",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "different",
	})
	require.Error(t, err)
	coded, ok := common.From(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, coded.Code)
	assert.Contains(t, coded.Fields, "name")
	assert.Contains(t, coded.Fields, "email")
	assert.Contains(t, coded.Fields, "password")
	assert.Contains(t, coded.Fields, "password_confirmation")
}

func TestRegisterRecruiterRequiresCompanyName(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Register(context.Background(), RegisterInput{
		Name:                 "Recruiter",
		Email:                "hr@example.com",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
		Role:                 "recruiter",
	})
	require.Error(t, err)
	coded, ok := common.From(err)
	require.True(t, ok)
	assert.Contains(t, coded.Fields, "company_name")
}

func TestLoginReturnsToken(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "seeker")

	ident, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, ident.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "seeker")

	_, _, err := fx.service.Login(context.Background(), created.Email, "wrong-password")
	assert.True(t, common.Is(err, common.CodeUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	fx := newAuthFixture(t)

	_, _, err := fx.service.Login(context.Background(), "ghost@example.com", "whatever")
	assert.True(t, common.Is(err, common.CodeUnauthorized))
}

func TestLoginBlocksUnapprovedRecruiter(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "recruiter")

	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	assert.True(t, common.Is(err, common.CodeForbidden))
	assert.Empty(t, token)
}

func TestLoginAfterApproval(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "recruiter")
	require.NoError(t, fx.identities.SetApproved(context.Background(), created.ID, true))

	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "seeker")
	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)

	ident, err := fx.service.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, ident.ID)
}

func TestAuthenticateRejectsRevokedToken(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "seeker")
	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), token))

	_, err = fx.service.Authenticate(context.Background(), token)
	assert.True(t, common.Is(err, common.CodeUnauthorized))
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Authenticate(context.Background(), "not-a-real-token")
	assert.True(t, common.Is(err, common.CodeUnauthorized))

	_, err = fx.service.Authenticate(context.Background(), "")
	assert.True(t, common.Is(err, common.CodeUnauthorized))
}

func TestAuthenticateReflectsApprovalRevocation(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "recruiter")
	require.NoError(t, fx.identities.SetApproved(context.Background(), created.ID, true))
	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)

	// Approval pulled after login: the session dies with it.
	require.NoError(t, fx.identities.SetApproved(context.Background(), created.ID, false))

	_, err = fx.service.Authenticate(context.Background(), token)
	assert.True(t, common.Is(err, common.CodeForbidden))
}

func TestAuthenticateRejectsDeletedUser(t *testing.T) {
	fx := newAuthFixture(t)
	created := fx.register(t, "seeker")
	_, token, err := fx.service.Login(context.Background(), created.Email, "secret-password")
	require.NoError(t, err)

	require.NoError(t, fx.identities.Delete(context.Background(), created.ID))

	_, err = fx.service.Authenticate(context.Background(), token)
	assert.True(t, common.Is(err, common.CodeUnauthorized))
}
