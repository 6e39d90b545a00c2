package repository

import (
	"context"

	"github.com/alexanderramin/coursedraft/internal/db"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// DefaultHistoryKeep is how many save records the recorder retains.
const DefaultHistoryKeep = 1000

// HistoryRecorder appends a save record and trims old ones in one transaction.
type HistoryRecorder struct {
	uow  db.UnitOfWork
	keep int
}

func NewHistoryRecorder(uow db.UnitOfWork, keep int) *HistoryRecorder {
	if keep <= 0 {
		keep = DefaultHistoryKeep
	}
	return &HistoryRecorder{uow: uow, keep: keep}
}

func (h *HistoryRecorder) Record(ctx context.Context, rec *domain.SaveRecord) error {
	return h.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteSaveLogRepo(tx)
		if err := repo.Record(ctx, rec); err != nil {
			return err
		}
		_, err := repo.Prune(ctx, h.keep)
		return err
	})
}
