package application

import (
	"context"

	"jobboard/internal/common"
)

// Applications are created and deleted, never updated.
type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	Delete(ctx context.Context, id common.UUID) error
	DeleteByJob(ctx context.Context, jobID common.UUID) (int64, error)
}
