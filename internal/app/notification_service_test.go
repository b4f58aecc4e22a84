package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
)

func TestNotificationListCountsUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	ctx := context.Background()

	caller := identity.Identity{ID: common.NewUUID(), Role: identity.RoleSeeker}
	other := common.NewUUID()

	_, err := repo.Create(ctx, notification.Event{RecipientID: caller.ID, Kind: notification.KindStatusUpdated, Payload: map[string]string{"job_title": "Backend Engineer"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, notification.Event{RecipientID: caller.ID, Kind: notification.KindStatusUpdated, Read: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, notification.Event{RecipientID: other, Kind: notification.KindNewApplication})
	require.NoError(t, err)

	events, unread, err := service.List(ctx, &caller, 20, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 1, unread)
}

func TestNotificationMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	ctx := context.Background()

	caller := identity.Identity{ID: common.NewUUID(), Role: identity.RoleSeeker}
	_, err := repo.Create(ctx, notification.Event{RecipientID: caller.ID, Kind: notification.KindStatusUpdated})
	require.NoError(t, err)
	_, err = repo.Create(ctx, notification.Event{RecipientID: caller.ID, Kind: notification.KindStatusUpdated})
	require.NoError(t, err)

	require.NoError(t, service.MarkAllRead(ctx, &caller))

	_, unread, err := service.List(ctx, &caller, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}
