package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountState is the lifecycle state of an account row.
type AccountState string

const (
	AccountOpen   AccountState = "OPEN"
	AccountLocked AccountState = "LOCKED"
	AccountClosed AccountState = "CLOSED"
)

// Account is a leaf balance-holder row owned by exactly one ledger.
// Holders and signature authorities are stored as text arrays.
type Account struct {
	AccountID            string          `db:"account_id"`
	Type                 LedgerType      `db:"account_type"`
	Name                 string          `db:"name"`
	LedgerID             string          `db:"ledger_id"`
	Balance              decimal.Decimal `db:"balance"`
	Holders              []string        `db:"holders"`
	SignatureAuthorities []string        `db:"signature_authorities"`
	ReferenceAccountID   string          `db:"reference_account_id"` // Nullable
	State                AccountState    `db:"state"`
	AuditFields
}

// AccountEntry is one immutable journal leg recorded against an account.
type AccountEntry struct {
	EntryID         string          `db:"entry_id"`
	AccountID       string          `db:"account_id"`
	Side            string          `db:"side"`
	Amount          decimal.Decimal `db:"amount"`
	Balance         decimal.Decimal `db:"balance"`
	Message         string          `db:"message"`
	TransactionDate time.Time       `db:"transaction_date"`
}

// AccountCommand is the audit row for one executed state-machine command.
type AccountCommand struct {
	CommandID string    `db:"command_id"`
	AccountID string    `db:"account_id"`
	Action    string    `db:"action"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
