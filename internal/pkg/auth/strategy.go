package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies access tokens carrying an identity claim.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

const defaultTTL = 7 * time.Hour

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return defaultTTL
	}
	return o.TTL
}

func validRole(role model.Role) bool {
	return role == model.RoleUser || role == model.RoleAdmin
}
