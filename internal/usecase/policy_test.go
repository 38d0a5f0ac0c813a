package usecase

import (
	"testing"

	"github.com/polkiloo/quizwallet/internal/config"
)

func TestPoliciesFromConfig(t *testing.T) {
	cfg := &config.Config{MinimumRedemption: 750, ReferralBonus: 25, AdminLogins: []string{"Root"}}

	if got := NewWithdrawalPolicy(cfg).MinimumRedemption; got != 750 {
		t.Fatalf("expected minimum 750, got %d", got)
	}

	reg := NewRegistrationPolicy(cfg)
	if reg.ReferralBonus != 25 {
		t.Fatalf("expected bonus 25, got %d", reg.ReferralBonus)
	}
	if !reg.isAdmin("root") || reg.isAdmin("alice") {
		t.Fatal("unexpected admin decision")
	}
	if (RegistrationPolicy{}).isAdmin("root") {
		t.Fatal("empty policy must not grant admin")
	}
}
