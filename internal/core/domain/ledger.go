package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerType defines the fundamental accounting family of a ledger.
// Every account inherits the family of its owning ledger, and a sub-ledger
// shares its root's family for reporting classification.
type LedgerType string

const (
	Asset     LedgerType = "ASSET"
	Liability LedgerType = "LIABILITY"
	Equity    LedgerType = "EQUITY"
	Revenue   LedgerType = "REVENUE"
	Expense   LedgerType = "EXPENSE"
)

// ValidLedgerType reports whether t is one of the five account families.
func ValidLedgerType(t LedgerType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// BalanceSide indicates whether a ledger family is debit-normal or credit-normal.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSide returns the normal balance side for a ledger family.
// ASSET and EXPENSE are debit-normal; LIABILITY, EQUITY and REVENUE are credit-normal.
func NormalSide(t LedgerType) BalanceSide {
	if t == Asset || t == Expense {
		return DebitSide
	}
	return CreditSide
}

// Ledger is a node in the chart-of-accounts forest. A ledger without a parent
// is a root; accounts attach to exactly one ledger as leaves.
type Ledger struct {
	LedgerID            string     `json:"ledgerID"` // Unique, path-friendly identifier
	Type                LedgerType `json:"type"`     // Immutable account family
	Name                string     `json:"name"`
	Description         string     `json:"description"`         // Nullable user description
	ParentLedgerID      string     `json:"parentLedgerID"`      // Empty for roots
	ShowAccountsInChart bool       `json:"showAccountsInChart"` // Whether direct accounts appear in the chart view
	AuditFields
	TotalValue decimal.Decimal `json:"totalValue"` // Derived: signed sum of all descendant account balances
}
