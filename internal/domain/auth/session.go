package auth

import (
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

// Session is an opaque bearer token record. Only the SHA-256 hash of the
// token is stored; the plaintext value leaves the process exactly once, in
// the login response.
type Session struct {
	ID        common.UUID
	UserID    common.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
