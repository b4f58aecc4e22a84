package identity

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, ident Identity) (*Identity, error)
	GetByID(ctx context.Context, id common.UUID) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	List(ctx context.Context) ([]Identity, error)
	ListPendingRecruiters(ctx context.Context) ([]Identity, error)
	SetApproved(ctx context.Context, id common.UUID, approved bool) error
	UpdateProfile(ctx context.Context, id common.UUID, update ProfileUpdate) (*Identity, error)
	Delete(ctx context.Context, id common.UUID) error
}
