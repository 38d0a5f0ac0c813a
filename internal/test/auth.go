package test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/polkiloo/quizwallet/internal/domain/model"
	pkgAuth "github.com/polkiloo/quizwallet/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens of the form "token-<role>-<id>"
// unless overridden.
type StrategyStub struct {
	IssueFn func(model.Identity) (string, error)
	ParseFn func(string) (model.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(identity model.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return TokenFor(identity), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.SplitN(token, "-", 3)
	if len(parts) != 3 || parts[0] != "token" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return model.Identity{UserID: id, Role: model.Role(parts[1])}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenFor returns the token StrategyStub issues for identity.
func TokenFor(identity model.Identity) string {
	return fmt.Sprintf("token-%s-%d", identity.Role, identity.UserID)
}

// UserIdentity and AdminIdentity build claims for tests.
func UserIdentity(id int64) model.Identity  { return model.Identity{UserID: id, Role: model.RoleUser} }
func AdminIdentity(id int64) model.Identity { return model.Identity{UserID: id, Role: model.RoleAdmin} }
