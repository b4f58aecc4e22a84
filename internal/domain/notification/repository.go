package notification

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, event Event) (*Event, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]Event, error)
	CountUnread(ctx context.Context, recipientID common.UUID) (int, error)
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
	DeleteByRecipient(ctx context.Context, recipientID common.UUID) error
}
