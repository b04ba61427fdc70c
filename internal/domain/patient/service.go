package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service fronts the record tables and doubles as the plan engine's record
// store: FetchPlanField and UpdateRecord satisfy plan.RecordStore.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, table string, rec *Record) error {
	if rec.FirstName == "" || rec.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	return s.repo.Create(ctx, table, rec)
}

func (s *Service) Get(ctx context.Context, table string, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, table, id)
}

func (s *Service) List(ctx context.Context, table string, limit, offset int) ([]*Record, int, error) {
	return s.repo.List(ctx, table, limit, offset)
}

// FetchPlanField loads the serialized plan and its revision for one record.
func (s *Service) FetchPlanField(ctx context.Context, patientID, sourceTable string) (string, int64, error) {
	return s.repo.FetchPlanFields(ctx, sourceTable, patientID)
}

// UpdateRecord overwrites the plan columns of one record in a single write.
func (s *Service) UpdateRecord(ctx context.Context, patientID, sourceTable string, fields map[string]string) error {
	return s.repo.UpdateFields(ctx, sourceTable, patientID, fields)
}
