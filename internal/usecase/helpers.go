package usecase

import (
	"log/slog"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
)

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

func requireAccess(actor model.Identity, userID int64) error {
	if actor.UserID <= 0 {
		return domainErrors.ErrUnauthorized
	}
	if !actor.CanAccess(userID) {
		return domainErrors.ErrForbidden
	}
	return nil
}

func requireAdmin(actor model.Identity) error {
	if actor.UserID <= 0 {
		return domainErrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return nil
}
