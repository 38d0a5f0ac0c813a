package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
)

const withdrawalColumns = `id, user_id, amount, destination, status, created_at, processed_at`

type withdrawalRepository struct {
	storage *Storage
}

func scanWithdrawal(row scanner) (*model.Withdrawal, error) {
	var w model.Withdrawal
	if err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Destination, &w.Status, &w.CreatedAt, &w.ProcessedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) Create(ctx context.Context, userID, amount int64, destination string) (*model.Withdrawal, error) {
	const query = `INSERT INTO withdrawals (user_id, amount, destination, status) VALUES ($1, $2, $3, $4)
                   RETURNING ` + withdrawalColumns
	w, err := scanWithdrawal(r.storage.pool.QueryRow(ctx, query, userID, amount, destination, model.WithdrawalStatusPending))
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	const query = `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id=$1`
	w, err := scanWithdrawal(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	const query = `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *withdrawalRepository) ListAll(ctx context.Context) ([]model.Withdrawal, error) {
	const query = `SELECT ` + withdrawalColumns + ` FROM withdrawals ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query)
}

func (r *withdrawalRepository) list(ctx context.Context, query string, args ...any) ([]model.Withdrawal, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) Accept(ctx context.Context, id int64) (*model.Withdrawal, error) {
	var accepted *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		w, err := r.transitionTx(ctx, tx, id, model.WithdrawalStatusAccepted)
		if err != nil {
			return err
		}
		_, err = r.storage.debitTx(ctx, tx, model.Movement{
			UserID:    w.UserID,
			Amount:    w.Amount,
			Reason:    model.EntryReasonWithdrawal,
			Reference: w.LedgerReference(),
		})
		if err != nil {
			return err
		}
		accepted = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (r *withdrawalRepository) Reject(ctx context.Context, id int64) (*model.Withdrawal, error) {
	var rejected *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		w, err := r.transitionTx(ctx, tx, id, model.WithdrawalStatusRejected)
		if err != nil {
			return err
		}
		rejected = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// transitionTx flips a pending request to status. The row lock taken by the
// update makes a racing transition wait and then miss the pending guard.
func (r *withdrawalRepository) transitionTx(ctx context.Context, tx pgx.Tx, id int64, status model.WithdrawalStatus) (*model.Withdrawal, error) {
	const update = `UPDATE withdrawals SET status=$2, processed_at=NOW()
                    WHERE id=$1 AND status=$3
                    RETURNING ` + withdrawalColumns
	w, err := scanWithdrawal(tx.QueryRow(ctx, update, id, status, model.WithdrawalStatusPending))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const exists = `SELECT EXISTS (SELECT 1 FROM withdrawals WHERE id=$1)`
	var found bool
	if err := tx.QueryRow(ctx, exists, id).Scan(&found); err != nil {
		return nil, err
	}
	if !found {
		return nil, domainErrors.ErrNotFound
	}
	return nil, domainErrors.ErrAlreadyProcessed
}
