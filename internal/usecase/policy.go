package usecase

import "github.com/polkiloo/quizwallet/internal/config"

// WithdrawalPolicy holds the rules a withdrawal request is checked against.
type WithdrawalPolicy struct {
	MinimumRedemption int64
}

// NewWithdrawalPolicy reads the policy from configuration.
func NewWithdrawalPolicy(cfg *config.Config) WithdrawalPolicy {
	return WithdrawalPolicy{MinimumRedemption: cfg.MinimumRedemption}
}

// RegistrationPolicy decides the role of new accounts and the referral reward.
type RegistrationPolicy struct {
	IsAdminLogin  func(login string) bool
	ReferralBonus int64
}

// NewRegistrationPolicy reads the policy from configuration.
func NewRegistrationPolicy(cfg *config.Config) RegistrationPolicy {
	return RegistrationPolicy{IsAdminLogin: cfg.IsAdminLogin, ReferralBonus: cfg.ReferralBonus}
}

func (p RegistrationPolicy) isAdmin(login string) bool {
	return p.IsAdminLogin != nil && p.IsAdminLogin(login)
}
