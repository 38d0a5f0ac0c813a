package repository

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// TransactionRepository persists payment receipts.
type TransactionRepository interface {
	Create(ctx context.Context, userID *int64, externalID string, amount int64) (*model.Transaction, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error)
	ListAll(ctx context.Context) ([]model.Transaction, error)
	// Resolve moves a pending receipt to a terminal status and credits its
	// owner on success. The boolean is false when the receipt was already
	// resolved, in which case nothing changes.
	Resolve(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error)
	SelectPendingForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error)
}
