package accounting

import (
	"fmt"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a leg amount based on the
// account's family and the entry side. Used in both services and repositories
// to keep the accounting convention in one place.
func CalculateSignedAmount(side domain.EntrySide, accountType domain.LedgerType, amount decimal.Decimal) (decimal.Decimal, error) {
	signedAmount := amount
	isDebit := side == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return signedAmount, nil
}

// ValidateEntryBalance checks that a journal entry's legs are well formed:
// both sides non-empty, all amounts strictly positive, and the debtor total
// exactly equal to the creditor total.
func ValidateEntryBalance(entry *domain.JournalEntry) error {
	if len(entry.Debtors) == 0 {
		return fmt.Errorf("journal entry must have at least one debtor leg")
	}
	if len(entry.Creditors) == 0 {
		return fmt.Errorf("journal entry must have at least one creditor leg")
	}

	for _, legs := range [][]domain.Leg{entry.Debtors, entry.Creditors} {
		for _, leg := range legs {
			if leg.Amount.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("leg amount must be positive for account %s", leg.AccountID)
			}
		}
	}

	debtorTotal := entry.DebtorTotal()
	creditorTotal := entry.CreditorTotal()
	if !debtorTotal.Equal(creditorTotal) {
		return fmt.Errorf("journal entry does not balance: debtor total is %s and creditor total is %s",
			debtorTotal.String(), creditorTotal.String())
	}

	return nil
}

// BalanceChanges computes the net signed balance delta per account for a
// journal entry's legs.
func BalanceChanges(entry *domain.JournalEntry, accountTypes map[string]domain.LedgerType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)

	apply := func(side domain.EntrySide, legs []domain.Leg) error {
		for _, leg := range legs {
			accountType, ok := accountTypes[leg.AccountID]
			if !ok {
				return fmt.Errorf("account type not found for account %s", leg.AccountID)
			}
			signed, err := CalculateSignedAmount(side, accountType, leg.Amount)
			if err != nil {
				return fmt.Errorf("error calculating signed amount for account %s: %w", leg.AccountID, err)
			}
			changes[leg.AccountID] = changes[leg.AccountID].Add(signed)
		}
		return nil
	}

	if err := apply(domain.Debit, entry.Debtors); err != nil {
		return nil, err
	}
	if err := apply(domain.Credit, entry.Creditors); err != nil {
		return nil, err
	}
	return changes, nil
}
