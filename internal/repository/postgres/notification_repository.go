package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, event notification.Event) (*notification.Event, error) {
	event.ID = common.NewUUID()
	event.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode notification payload", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO notifications (id, recipient_id, kind, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.RecipientID, event.Kind, payload, event.Read, event.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return &event, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]notification.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, recipient_id, kind, payload, is_read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, recipientID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Event
	for rows.Next() {
		var event notification.Event
		var payload []byte
		if err := rows.Scan(&event.ID, &event.RecipientID, &event.Kind, &payload, &event.Read, &event.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		if err := json.Unmarshal(payload, &event.Payload); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode notification payload", err)
		}
		items = append(items, event)
	}
	return items, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID common.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count notifications", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID); err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notifications read", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, recipientID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE recipient_id = $1`, recipientID); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete notifications", err)
	}
	return nil
}
