package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

// WalletUseCase exposes the coin ledger to account holders.
type WalletUseCase struct {
	wallets     repository.WalletRepository
	idempotency repository.IdempotencyStore
	logger      *slog.Logger
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, idempotency repository.IdempotencyStore, logger *slog.Logger) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, idempotency: idempotency, logger: loggerOrDiscard(logger)}
}

// Balance returns the balance of userID. Users may read their own balance,
// admins may read any.
func (u *WalletUseCase) Balance(ctx context.Context, actor model.Identity, userID int64) (int64, error) {
	if err := requireAccess(actor, userID); err != nil {
		return 0, err
	}
	return u.wallets.Balance(ctx, userID)
}

// Purchase credits the actor's own wallet and returns the new balance.
func (u *WalletUseCase) Purchase(ctx context.Context, actor model.Identity, amount int64) (int64, error) {
	if err := requireAccess(actor, actor.UserID); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, domainErrors.ErrInvalidAmount
	}
	return u.wallets.Credit(ctx, model.Movement{
		UserID: actor.UserID,
		Amount: amount,
		Reason: model.EntryReasonPurchase,
	})
}

// DeductForQuiz debits the actor's wallet for playing quizRef. With a
// non-empty idempotencyKey the debit happens at most once per user and key,
// and replays return the balance recorded by the first call.
func (u *WalletUseCase) DeductForQuiz(ctx context.Context, actor model.Identity, amount int64, quizRef, idempotencyKey string) (int64, error) {
	if err := requireAccess(actor, actor.UserID); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, domainErrors.ErrInvalidAmount
	}

	movement := model.Movement{
		UserID:    actor.UserID,
		Amount:    amount,
		Reason:    model.EntryReasonQuiz,
		Reference: strings.TrimSpace(quizRef),
	}

	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" || u.idempotency == nil {
		return u.wallets.Debit(ctx, movement)
	}

	key := strconv.FormatInt(actor.UserID, 10) + ":" + idempotencyKey
	stored, err := u.idempotency.Begin(ctx, key)
	if err != nil {
		return 0, err
	}
	if stored != nil {
		u.logger.Info("quiz deduction replayed", slog.Int64("user_id", actor.UserID), slog.String("key", idempotencyKey))
		return *stored, nil
	}

	balance, err := u.wallets.Debit(ctx, movement)
	if err != nil {
		if abortErr := u.idempotency.Abort(ctx, key); abortErr != nil {
			u.logger.Warn("failed to release idempotency key", slog.String("key", key), slog.String("error", abortErr.Error()))
		}
		return 0, err
	}

	if err := u.idempotency.Complete(ctx, key, balance); err != nil {
		u.logger.Warn("failed to record idempotency result", slog.String("key", key), slog.String("error", err.Error()))
	}
	return balance, nil
}

// History returns ledger entries of userID, newest first.
func (u *WalletUseCase) History(ctx context.Context, actor model.Identity, userID int64) ([]model.LedgerEntry, error) {
	if err := requireAccess(actor, userID); err != nil {
		return nil, err
	}
	entries, err := u.wallets.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load ledger history: %w", err)
	}
	return entries, nil
}
