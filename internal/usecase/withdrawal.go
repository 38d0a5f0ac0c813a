package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
)

// WithdrawalUseCase drives withdrawal requests from filing to decision.
type WithdrawalUseCase struct {
	withdrawals repository.WithdrawalRepository
	wallets     repository.WalletRepository
	users       repository.UserRepository
	policy      WithdrawalPolicy
	logger      *slog.Logger
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(
	withdrawals repository.WithdrawalRepository,
	wallets repository.WalletRepository,
	users repository.UserRepository,
	policy WithdrawalPolicy,
	logger *slog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		withdrawals: withdrawals,
		wallets:     wallets,
		users:       users,
		policy:      policy,
		logger:      loggerOrDiscard(logger),
	}
}

// Request files a pending withdrawal for the actor. The balance check is
// advisory; nothing is reserved until an admin accepts the request.
func (u *WithdrawalUseCase) Request(ctx context.Context, actor model.Identity, amount int64, destination string) (*model.Withdrawal, error) {
	if err := requireAccess(actor, actor.UserID); err != nil {
		return nil, err
	}

	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, domainErrors.ErrMissingDestination
	}
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if amount < u.policy.MinimumRedemption {
		return nil, domainErrors.ErrBelowMinimum
	}

	balance, err := u.wallets.Balance(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, domainErrors.ErrInsufficientFunds
	}

	w, err := u.withdrawals.Create(ctx, actor.UserID, amount, destination)
	if err != nil {
		return nil, err
	}
	u.logger.Info("withdrawal requested",
		slog.Int64("withdrawal_id", w.ID),
		slog.Int64("user_id", w.UserID),
		slog.Int64("amount", w.Amount),
	)
	return w, nil
}

// Accept approves a pending request and debits its owner in one step.
func (u *WithdrawalUseCase) Accept(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := u.withdrawals.Accept(ctx, id)
	if err != nil {
		return nil, err
	}
	u.logger.Info("withdrawal accepted",
		slog.Int64("withdrawal_id", w.ID),
		slog.Int64("user_id", w.UserID),
		slog.Int64("amount", w.Amount),
		slog.Int64("admin_id", actor.UserID),
	)
	return w, nil
}

// Reject declines a pending request. The wallet is untouched.
func (u *WithdrawalUseCase) Reject(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := u.withdrawals.Reject(ctx, id)
	if err != nil {
		return nil, err
	}
	u.logger.Info("withdrawal rejected",
		slog.Int64("withdrawal_id", w.ID),
		slog.Int64("user_id", w.UserID),
		slog.Int64("admin_id", actor.UserID),
	)
	return w, nil
}

// Get returns one request joined with its owner's details.
func (u *WithdrawalUseCase) Get(ctx context.Context, actor model.Identity, id int64) (*model.WithdrawalView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	w, err := u.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &model.WithdrawalView{Withdrawal: *w}
	owner, err := u.users.GetByID(ctx, w.UserID)
	switch {
	case err == nil:
		view.Login = owner.Login
		view.Wallet = owner.Wallet
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}
	return view, nil
}

// ListMine returns the actor's requests, newest first.
func (u *WithdrawalUseCase) ListMine(ctx context.Context, actor model.Identity) ([]model.Withdrawal, error) {
	if err := requireAccess(actor, actor.UserID); err != nil {
		return nil, err
	}
	return u.withdrawals.ListByUser(ctx, actor.UserID)
}

// ListAll returns every request, newest first, joined with owner details.
func (u *WithdrawalUseCase) ListAll(ctx context.Context, actor model.Identity) ([]model.WithdrawalView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	items, err := u.withdrawals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.WithdrawalView{}, nil
	}

	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, w := range items {
		if _, ok := seen[w.UserID]; !ok {
			seen[w.UserID] = struct{}{}
			ids = append(ids, w.UserID)
		}
	}

	owners, err := u.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.User, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}

	views := make([]model.WithdrawalView, 0, len(items))
	for _, w := range items {
		view := model.WithdrawalView{Withdrawal: w}
		if owner, ok := byID[w.UserID]; ok {
			view.Login = owner.Login
			view.Wallet = owner.Wallet
		}
		views = append(views, view)
	}
	return views, nil
}
