package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/http/response"
)

type contextKey string

const (
	contextIdentityKey contextKey = "identity"
	contextTokenKey    contextKey = "token"
)

// Authenticator resolves a bearer token to the identity it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Identity, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		ident, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			response.Error(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), contextIdentityKey, ident)
		ctx = context.WithValue(ctx, contextTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", common.NewError(common.CodeUnauthorized, "missing authorization header", nil)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

func RequireRole(role identity.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeUnauthorized, "authentication required", nil))
				return
			}
			if ident.Role != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	ident, ok := ctx.Value(contextIdentityKey).(*identity.Identity)
	return ident, ok && ident != nil
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextTokenKey).(string)
	return token, ok && token != ""
}
