package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
	pkgAuth "github.com/polkiloo/quizwallet/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users   repository.UserRepository
	wallets repository.WalletRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
	policy  RegistrationPolicy
	logger  *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	wallets repository.WalletRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	policy RegistrationPolicy,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		wallets: wallets,
		hasher:  hasher,
		tokens:  strategy,
		policy:  policy,
		logger:  loggerOrDiscard(logger),
	}
}

// Register creates a new account and returns an access token for it.
// A non-empty referralCode must be the id of an existing user.
func (u *AuthUseCase) Register(ctx context.Context, login, password, referralCode string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	referredBy, err := u.resolveReferral(ctx, strings.TrimSpace(referralCode))
	if err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleUser
	if u.policy.isAdmin(login) {
		role = model.RoleAdmin
	}

	usr, err := u.users.Create(ctx, repository.NewUser{
		Login:        login,
		PasswordHash: hash,
		Role:         role,
		ReferredBy:   referredBy,
	})
	if err != nil {
		return nil, "", err
	}

	if referredBy != nil {
		u.rewardReferrer(ctx, *referredBy, usr.ID)
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

func (u *AuthUseCase) resolveReferral(ctx context.Context, code string) (*int64, error) {
	if code == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(code, 10, 64)
	if err != nil || id <= 0 {
		return nil, domainErrors.ErrInvalidReferral
	}
	if _, err := u.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidReferral
		}
		return nil, err
	}
	return &id, nil
}

// rewardReferrer credits the referral bonus. The account already exists at
// this point, so a failed credit is logged and registration still succeeds.
func (u *AuthUseCase) rewardReferrer(ctx context.Context, referrerID, newUserID int64) {
	if u.policy.ReferralBonus <= 0 {
		return
	}
	_, err := u.wallets.Credit(ctx, model.Movement{
		UserID:    referrerID,
		Amount:    u.policy.ReferralBonus,
		Reason:    model.EntryReasonReferral,
		Reference: "user:" + strconv.FormatInt(newUserID, 10),
	})
	if err != nil {
		u.logger.Error("failed to credit referral bonus",
			slog.Int64("referrer_id", referrerID),
			slog.Int64("user_id", newUserID),
			slog.String("error", err.Error()),
		)
		return
	}
	u.logger.Info("referral bonus credited",
		slog.Int64("referrer_id", referrerID),
		slog.Int64("amount", u.policy.ReferralBonus),
	)
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the identity claim from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
