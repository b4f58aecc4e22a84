package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/auth"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/security"
)

type AuthService struct {
	identities identity.Repository
	sessions   auth.SessionRepository
	hasher     *security.PasswordHasher
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(identities identity.Repository, sessions auth.SessionRepository, hasher *security.PasswordHasher, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		identities: identities,
		sessions:   sessions,
		hasher:     hasher,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 string
	CompanyName          string
}

// Register creates an identity. Seekers come out approved and can log in at
// once; recruiters start unapproved and stay locked out until an admin acts.
// Registering as admin is not possible through this path.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*identity.Identity, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email address is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if input.Password != input.PasswordConfirmation {
		fields["password_confirmation"] = "password confirmation does not match"
	}
	role := identity.RoleSeeker
	if input.Role != "" {
		parsed, ok := identity.ParseRole(input.Role)
		if !ok || parsed == identity.RoleAdmin {
			fields["role"] = "role must be seeker or recruiter"
		} else {
			role = parsed
		}
	}
	if role == identity.RoleRecruiter && strings.TrimSpace(input.CompanyName) == "" {
		fields["company_name"] = "company name is required for recruiters"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.identities.Create(ctx, identity.Identity{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Approved:     role != identity.RoleRecruiter,
		CompanyName:  strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID.String()).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints an opaque session token. An unapproved
// recruiter authenticates but gets no token: the account exists, access does
// not, and the response must say so.
func (s *AuthService) Login(ctx context.Context, email, password string) (*identity.Identity, string, error) {
	ident, err := s.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, "", err
	}
	if !s.hasher.Compare(ident.PasswordHash, password) {
		return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	if ident.Role == identity.RoleRecruiter && !ident.Approved {
		return nil, "", common.NewError(common.CodeForbidden, "your recruiter account is awaiting admin approval", nil)
	}

	token, err := security.GenerateToken()
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to generate session token", err)
	}
	now := time.Now().UTC()
	session := auth.Session{
		ID:        common.NewUUID(),
		UserID:    ident.ID,
		TokenHash: security.HashToken(token),
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Store(ctx, session); err != nil {
		return nil, "", err
	}
	s.logger.Info().Str("user_id", ident.ID.String()).Msg("user logged in")
	return ident, token, nil
}

// Logout revokes the presented token only. Other sessions of the same user
// stay valid.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, security.HashToken(token), time.Now().UTC().Unix())
}

// Authenticate resolves a bearer token to a live identity. It re-reads the
// user row every time so role and approval changes take effect on the next
// request, not the next login.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}
	session, err := s.sessions.GetByTokenHash(ctx, security.HashToken(token))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid or expired session", nil)
		}
		return nil, err
	}
	now := time.Now().UTC()
	if session.RevokedAt != nil || now.After(session.ExpiresAt) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid or expired session", nil)
	}
	ident, err := s.identities.GetByID(ctx, session.UserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid or expired session", nil)
		}
		return nil, err
	}
	if ident.Role == identity.RoleRecruiter && !ident.Approved {
		return nil, common.NewError(common.CodeForbidden, "your recruiter account is awaiting admin approval", nil)
	}
	return ident, nil
}
