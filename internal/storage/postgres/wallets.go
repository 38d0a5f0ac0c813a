package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
)

type walletRepository struct {
	storage *Storage
}

func (r *walletRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT wallet FROM users WHERE id=$1`
	var balance int64
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *walletRepository) Credit(ctx context.Context, m model.Movement) (int64, error) {
	var balance int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		balance, err = r.storage.creditTx(ctx, tx, m)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *walletRepository) Debit(ctx context.Context, m model.Movement) (int64, error) {
	var balance int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		balance, err = r.storage.debitTx(ctx, tx, m)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *walletRepository) History(ctx context.Context, userID int64) ([]model.LedgerEntry, error) {
	const query = `SELECT id, user_id, delta, balance_after, reason, reference, created_at
                   FROM wallet_entries WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.BalanceAfter, &e.Reason, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// creditTx increments the wallet in one statement and records the entry.
func (s *Storage) creditTx(ctx context.Context, tx pgx.Tx, m model.Movement) (int64, error) {
	if m.Amount <= 0 {
		return 0, domainErrors.ErrInvalidAmount
	}
	const credit = `UPDATE users SET wallet = wallet + $2 WHERE id=$1 RETURNING wallet`
	var balance int64
	if err := tx.QueryRow(ctx, credit, m.UserID, m.Amount).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	if err := s.recordEntryTx(ctx, tx, m, m.Amount, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// debitTx decrements the wallet only when it covers the amount. The guard and
// the decrement are one statement, so concurrent debits cannot overdraw.
func (s *Storage) debitTx(ctx context.Context, tx pgx.Tx, m model.Movement) (int64, error) {
	if m.Amount <= 0 {
		return 0, domainErrors.ErrInvalidAmount
	}
	const debit = `UPDATE users SET wallet = wallet - $2 WHERE id=$1 AND wallet >= $2 RETURNING wallet`
	var balance int64
	err := tx.QueryRow(ctx, debit, m.UserID, m.Amount).Scan(&balance)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		const exists = `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`
		var found bool
		if err := tx.QueryRow(ctx, exists, m.UserID).Scan(&found); err != nil {
			return 0, err
		}
		if !found {
			return 0, domainErrors.ErrNotFound
		}
		return 0, domainErrors.ErrInsufficientFunds
	}
	if err := s.recordEntryTx(ctx, tx, m, -m.Amount, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Storage) recordEntryTx(ctx context.Context, tx pgx.Tx, m model.Movement, delta, balance int64) error {
	const insert = `INSERT INTO wallet_entries (user_id, delta, balance_after, reason, reference) VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(ctx, insert, m.UserID, delta, balance, m.Reason, m.Reference)
	return err
}
