package app

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
)

type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the caller's notifications newest first along with the count
// of unread ones across all pages.
func (s *NotificationService) List(ctx context.Context, caller *identity.Identity, limit, offset int) ([]notification.Event, int, error) {
	events, err := s.repo.ListByRecipient(ctx, caller.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, caller.ID)
	if err != nil {
		return nil, 0, err
	}
	return events, unread, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, caller *identity.Identity) error {
	return s.repo.MarkAllRead(ctx, caller.ID)
}
