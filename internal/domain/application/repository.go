package application

import (
	"context"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByPostingAndApplicant(ctx context.Context, postingID, applicantID common.UUID) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID, limit, offset int) ([]Application, error)
	ListByOwner(ctx context.Context, ownerID common.UUID, postingID *common.UUID, limit, offset int) ([]Application, error)
	// UpdateStatus performs a compare-and-swap: the row changes only when its
	// stored status still equals expected, otherwise ErrStatusChanged-style
	// conflict is reported via common.CodeInvalidTransition.
	UpdateStatus(ctx context.Context, id common.UUID, expected, next Status) (*Application, error)
	DeleteByPosting(ctx context.Context, postingID common.UUID) ([]Application, error)
	DeleteByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	DeleteByPostingOwner(ctx context.Context, ownerID common.UUID) ([]Application, error)
}
