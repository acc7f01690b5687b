package accounting_test

import (
	"testing"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("150.00")

	cases := []struct {
		name        string
		side        domain.EntrySide
		accountType domain.LedgerType
		want        string
	}{
		{"debit asset", domain.Debit, domain.Asset, "150.00"},
		{"credit asset", domain.Credit, domain.Asset, "-150.00"},
		{"debit expense", domain.Debit, domain.Expense, "150.00"},
		{"credit expense", domain.Credit, domain.Expense, "-150.00"},
		{"debit liability", domain.Debit, domain.Liability, "-150.00"},
		{"credit liability", domain.Credit, domain.Liability, "150.00"},
		{"debit equity", domain.Debit, domain.Equity, "-150.00"},
		{"credit equity", domain.Credit, domain.Equity, "150.00"},
		{"debit revenue", domain.Debit, domain.Revenue, "-150.00"},
		{"credit revenue", domain.Credit, domain.Revenue, "150.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := accounting.CalculateSignedAmount(tc.side, tc.accountType, amount)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}

	_, err := accounting.CalculateSignedAmount(domain.Debit, "BOGUS", amount)
	assert.Error(t, err)
}

func TestValidateEntryBalance(t *testing.T) {
	leg := func(account, amount string) domain.Leg {
		return domain.Leg{AccountID: account, Amount: decimal.RequireFromString(amount)}
	}

	balanced := &domain.JournalEntry{
		Debtors:   []domain.Leg{leg("7010.010", "100.00"), leg("7010.020", "50.00")},
		Creditors: []domain.Leg{leg("1110.010", "150.00")},
	}
	assert.NoError(t, accounting.ValidateEntryBalance(balanced))

	imbalanced := &domain.JournalEntry{
		Debtors:   []domain.Leg{leg("7010.010", "150.00")},
		Creditors: []domain.Leg{leg("1110.010", "140.00")},
	}
	assert.Error(t, accounting.ValidateEntryBalance(imbalanced))

	negative := &domain.JournalEntry{
		Debtors:   []domain.Leg{leg("7010.010", "-10.00")},
		Creditors: []domain.Leg{leg("1110.010", "-10.00")},
	}
	assert.Error(t, accounting.ValidateEntryBalance(negative))

	oneSided := &domain.JournalEntry{
		Debtors: []domain.Leg{leg("7010.010", "10.00")},
	}
	assert.Error(t, accounting.ValidateEntryBalance(oneSided))
}

func TestBalanceChanges(t *testing.T) {
	entry := &domain.JournalEntry{
		Debtors:   []domain.Leg{{AccountID: "7010.010", Amount: decimal.RequireFromString("150.00")}},
		Creditors: []domain.Leg{{AccountID: "1110.010", Amount: decimal.RequireFromString("150.00")}},
	}
	types := map[string]domain.LedgerType{
		"7010.010": domain.Expense,
		"1110.010": domain.Asset,
	}

	changes, err := accounting.BalanceChanges(entry, types)
	require.NoError(t, err)
	assert.True(t, changes["7010.010"].Equal(decimal.RequireFromString("150.00")))
	assert.True(t, changes["1110.010"].Equal(decimal.RequireFromString("-150.00")))
}
