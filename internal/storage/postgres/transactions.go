package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
)

const transactionColumns = `id, user_id, external_id, amount, status, created_at, updated_at`

type transactionRepository struct {
	storage *Storage
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var t model.Transaction
	if err := row.Scan(&t.ID, &t.UserID, &t.ExternalID, &t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, userID *int64, externalID string, amount int64) (*model.Transaction, error) {
	const query = `INSERT INTO transactions (user_id, external_id, amount, status) VALUES ($1, $2, $3, $4)
                   RETURNING ` + transactionColumns
	t, err := scanTransaction(r.storage.pool.QueryRow(ctx, query, userID, externalID, amount, model.PaymentStatusPending))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Transaction, error) {
	return r.getByExternalID(ctx, r.storage.pool, externalID)
}

func (r *transactionRepository) getByExternalID(ctx context.Context, q rowQuerier, externalID string) (*model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE external_id=$1`
	t, err := scanTransaction(q.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *transactionRepository) Resolve(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	if !status.IsTerminal() {
		return nil, false, domainErrors.ErrInvalidStatus
	}

	var (
		result  *model.Transaction
		applied bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE transactions SET status=$2, updated_at=NOW()
                        WHERE external_id=$1 AND status=$3
                        RETURNING ` + transactionColumns
		t, err := scanTransaction(tx.QueryRow(ctx, update, externalID, status, model.PaymentStatusPending))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			existing, err := r.getByExternalID(ctx, tx, externalID)
			if err != nil {
				return err
			}
			result = existing
			return nil
		}

		if t.Status == model.PaymentStatusSuccess && t.UserID != nil {
			_, err := r.storage.creditTx(ctx, tx, model.Movement{
				UserID:    *t.UserID,
				Amount:    t.Amount,
				Reason:    model.EntryReasonPayment,
				Reference: t.ExternalID,
			})
			if err != nil {
				return err
			}
		}
		result, applied = t, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, applied, nil
}

func (r *transactionRepository) SelectPendingForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error) {
	const selectQuery = `SELECT ` + transactionColumns + `
                         FROM transactions
                         WHERE status='Pending'
                         ORDER BY updated_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`
	const touchQuery = `UPDATE transactions SET updated_at=NOW() WHERE id = ANY($1)`

	var pending []model.Transaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, limit)
		for rows.Next() {
			t, err := scanTransaction(rows)
			if err != nil {
				rows.Close()
				return err
			}
			pending = append(pending, *t)
			ids = append(ids, t.ID)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, touchQuery, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}
