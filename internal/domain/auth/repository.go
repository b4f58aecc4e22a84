package auth

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type SessionRepository interface {
	Store(ctx context.Context, session Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	Revoke(ctx context.Context, tokenHash string, revokedAtUnix int64) error
	RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error
	DeleteExpired(ctx context.Context, beforeUnix int64) error
}
