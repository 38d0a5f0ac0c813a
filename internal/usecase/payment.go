package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

// PaymentUseCase tracks coin purchases paid through the external gateway.
type PaymentUseCase struct {
	transactions repository.TransactionRepository
	logger       *slog.Logger
	newID        func() string
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(transactions repository.TransactionRepository, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		transactions: transactions,
		logger:       loggerOrDiscard(logger),
		newID:        uuid.NewString,
	}
}

// Initiate opens a pending receipt for the actor under a fresh external id.
func (u *PaymentUseCase) Initiate(ctx context.Context, actor model.Identity, amount int64) (*model.Transaction, error) {
	if err := requireAccess(actor, actor.UserID); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	owner := actor.UserID
	tx, err := u.transactions.Create(ctx, &owner, u.newID(), amount)
	if err != nil {
		return nil, err
	}
	u.logger.Info("payment initiated",
		slog.String("external_id", tx.ExternalID),
		slog.Int64("user_id", owner),
		slog.Int64("amount", amount),
	)
	return tx, nil
}

// Confirm applies the gateway outcome for externalID. The boolean reports
// whether this call resolved the receipt; confirmations of receipts that are
// already resolved, or that are still pending at the gateway, change nothing.
func (u *PaymentUseCase) Confirm(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, false, domainErrors.ErrInvalidArgument
	}

	switch status {
	case model.PaymentStatusPending:
		tx, err := u.transactions.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, false, err
		}
		return tx, false, nil
	case model.PaymentStatusSuccess, model.PaymentStatusFailed:
	default:
		return nil, false, domainErrors.ErrInvalidStatus
	}

	tx, applied, err := u.transactions.Resolve(ctx, externalID, status)
	if err != nil {
		return nil, false, err
	}
	if !applied {
		u.logger.Debug("payment already resolved",
			slog.String("external_id", externalID),
			slog.String("status", string(tx.Status)),
		)
		return tx, false, nil
	}

	attrs := []any{
		slog.String("external_id", externalID),
		slog.String("status", string(tx.Status)),
		slog.Int64("amount", tx.Amount),
	}
	if tx.UserID != nil {
		attrs = append(attrs, slog.Int64("user_id", *tx.UserID))
	}
	u.logger.Info("payment resolved", attrs...)
	return tx, true, nil
}

// List returns every receipt, newest first.
func (u *PaymentUseCase) List(ctx context.Context, actor model.Identity) ([]model.Transaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return u.transactions.ListAll(ctx)
}

// PendingForReconciliation claims up to limit receipts still awaiting the gateway.
func (u *PaymentUseCase) PendingForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error) {
	return u.transactions.SelectPendingForReconciliation(ctx, limit)
}
