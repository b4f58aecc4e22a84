package posting

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, p Posting) (*Posting, error)
	Update(ctx context.Context, id common.UUID, update Update) (*Posting, error)
	GetByID(ctx context.Context, id common.UUID) (*Posting, error)
	List(ctx context.Context, search string, limit, offset int) ([]Posting, error)
	ListByOwner(ctx context.Context, ownerID common.UUID, limit, offset int) ([]Posting, error)
	Delete(ctx context.Context, id common.UUID) error
	DeleteByOwner(ctx context.Context, ownerID common.UUID) error
}
