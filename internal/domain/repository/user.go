package repository

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// NewUser carries the attributes of an account being registered.
type NewUser struct {
	Login        string
	PasswordHash string
	Role         model.Role
	ReferredBy   *int64
}

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user NewUser) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByIDs returns the users that exist among ids. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}
