package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, table string, r *Record) error
	GetByID(ctx context.Context, table string, id uuid.UUID) (*Record, error)
	List(ctx context.Context, table string, limit, offset int) ([]*Record, int, error)

	// FetchPlanFields reads the plan columns of one record.
	FetchPlanFields(ctx context.Context, table, id string) (string, int64, error)
	// UpdateFields overwrites the named plan columns of one record.
	UpdateFields(ctx context.Context, table, id string, fields map[string]string) error
}
