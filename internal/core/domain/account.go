package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountState is the lifecycle state of an account.
type AccountState string

const (
	AccountOpen   AccountState = "OPEN"
	AccountLocked AccountState = "LOCKED"
	AccountClosed AccountState = "CLOSED"
)

// Account is a leaf balance-holder attached to exactly one ledger.
// Balance is mutated only by the journal posting engine, never directly.
type Account struct {
	AccountID            string          `json:"accountID"` // Unique, max 34 chars
	Type                 LedgerType      `json:"type"`      // Copied from the owning ledger's family
	Name                 string          `json:"name"`
	LedgerID             string          `json:"ledgerID"` // Owning ledger, non-null
	Balance              decimal.Decimal `json:"balance"`
	Holders              []string        `json:"holders"`
	SignatureAuthorities []string        `json:"signatureAuthorities"`
	ReferenceAccountID   string          `json:"referenceAccountID"` // Optional link to another account
	State                AccountState    `json:"state"`
	AuditFields
}

// EntrySide indicates whether an account entry is a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// AccountEntry is an immutable record of one journal leg applied to an account,
// including the balance that resulted from it.
type AccountEntry struct {
	EntryID         string          `json:"entryID"`
	AccountID       string          `json:"accountID"`
	Side            EntrySide       `json:"side"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"` // Account balance after this entry
	Message         string          `json:"message"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// CommandAction is a state-machine command on an account.
type CommandAction string

const (
	ActionLock   CommandAction = "LOCK"
	ActionUnlock CommandAction = "UNLOCK"
	ActionClose  CommandAction = "CLOSE"
	ActionReopen CommandAction = "REOPEN"
)

// AccountCommand is the audit record of one executed state-machine command.
type AccountCommand struct {
	CommandID string        `json:"commandID"`
	AccountID string        `json:"accountID"`
	Action    CommandAction `json:"action"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"createdAt"`
	CreatedBy string        `json:"createdBy"`
}

// accountTransitions maps each state to the commands that are legal from it
// and the state each command leads to.
var accountTransitions = map[AccountState]map[CommandAction]AccountState{
	AccountOpen: {
		ActionLock:  AccountLocked,
		ActionClose: AccountClosed,
	},
	AccountLocked: {
		ActionUnlock: AccountOpen,
		ActionClose:  AccountClosed,
	},
	AccountClosed: {
		ActionReopen: AccountOpen,
	},
}

// NextAccountState returns the state reached by applying action in state,
// or false if the transition is not allowed.
func NextAccountState(state AccountState, action CommandAction) (AccountState, bool) {
	next, ok := accountTransitions[state][action]
	return next, ok
}
