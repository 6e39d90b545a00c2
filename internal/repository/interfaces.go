package repository

import (
	"context"

	"github.com/alexanderramin/coursedraft/internal/domain"
)

// SaveLogRepo stores the local history of save attempts.
type SaveLogRepo interface {
	Record(ctx context.Context, rec *domain.SaveRecord) error
	GetByID(ctx context.Context, id string) (*domain.SaveRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.SaveRecord, error)
	ListByCourse(ctx context.Context, courseID string, limit int) ([]*domain.SaveRecord, error)
	CountByOutcome(ctx context.Context) (map[domain.SaveOutcome]int, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
