package domain_test

import (
	"testing"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextAccountState(t *testing.T) {
	tests := []struct {
		name    string
		state   domain.AccountState
		action  domain.CommandAction
		want    domain.AccountState
		allowed bool
	}{
		{"lock an open account", domain.AccountOpen, domain.ActionLock, domain.AccountLocked, true},
		{"close an open account", domain.AccountOpen, domain.ActionClose, domain.AccountClosed, true},
		{"unlock an open account", domain.AccountOpen, domain.ActionUnlock, "", false},
		{"reopen an open account", domain.AccountOpen, domain.ActionReopen, "", false},
		{"unlock a locked account", domain.AccountLocked, domain.ActionUnlock, domain.AccountOpen, true},
		{"close a locked account", domain.AccountLocked, domain.ActionClose, domain.AccountClosed, true},
		{"lock a locked account", domain.AccountLocked, domain.ActionLock, "", false},
		{"reopen a closed account", domain.AccountClosed, domain.ActionReopen, domain.AccountOpen, true},
		{"lock a closed account", domain.AccountClosed, domain.ActionLock, "", false},
		{"close a closed account", domain.AccountClosed, domain.ActionClose, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.NextAccountState(tt.state, tt.action)
			assert.Equal(t, tt.allowed, ok)
			if tt.allowed {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalSide(t *testing.T) {
	assert.Equal(t, domain.DebitSide, domain.NormalSide(domain.Asset))
	assert.Equal(t, domain.DebitSide, domain.NormalSide(domain.Expense))
	assert.Equal(t, domain.CreditSide, domain.NormalSide(domain.Liability))
	assert.Equal(t, domain.CreditSide, domain.NormalSide(domain.Equity))
	assert.Equal(t, domain.CreditSide, domain.NormalSide(domain.Revenue))
}

func TestValidLedgerType(t *testing.T) {
	for _, valid := range []domain.LedgerType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		assert.True(t, domain.ValidLedgerType(valid))
	}
	assert.False(t, domain.ValidLedgerType("CONTRA"))
	assert.False(t, domain.ValidLedgerType(""))
}
