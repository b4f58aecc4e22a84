package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/auth"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Store(ctx context.Context, session auth.Session) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.UserID, session.TokenHash, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store session", err)
	}
	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		FROM sessions WHERE token_hash = $1`, tokenHash)
	var session auth.Session
	if err := row.Scan(&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt, &session.RevokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "session not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load session", err)
	}
	return &session, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string, revokedAtUnix int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE sessions SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL`,
		time.Unix(revokedAtUnix, 0).UTC(), tokenHash); err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke session", err)
	}
	return nil
}

func (r *SessionRepository) RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE sessions SET revoked_at = $1 WHERE user_id = $2 AND revoked_at IS NULL`,
		time.Unix(revokedAtUnix, 0).UTC(), userID); err != nil {
		return common.NewError(common.CodeInternal, "failed to revoke sessions", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, beforeUnix int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Unix(beforeUnix, 0).UTC()); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete expired sessions", err)
	}
	return nil
}
