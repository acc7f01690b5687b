package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryState indicates whether an entry has been released.
type JournalEntryState string

const (
	Pending   JournalEntryState = "PENDING"
	Processed JournalEntryState = "PROCESSED"
)

// Leg is one side of a journal entry: an account plus a strictly positive amount.
type Leg struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntry is an atomic, balanced set of debit and credit legs. Content is
// immutable once created; the only allowed action is the PENDING -> PROCESSED
// release transition, which applies the legs to account balances.
type JournalEntry struct {
	TransactionID       string            `json:"transactionID"` // Unique, max 34 chars
	TransactionDate     time.Time         `json:"transactionDate"`
	TransactionType     string            `json:"transactionType"`     // Code into the transaction type registry
	TransactionTypeName string            `json:"transactionTypeName"` // Resolved at read time
	Clerk               string            `json:"clerk"`
	Note                string            `json:"note"`
	Message             string            `json:"message"`
	Debtors             []Leg             `json:"debtors"`
	Creditors           []Leg             `json:"creditors"`
	State               JournalEntryState `json:"state"`
	AuditFields
}

// DebtorTotal returns the sum of all debtor leg amounts.
func (j *JournalEntry) DebtorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, leg := range j.Debtors {
		total = total.Add(leg.Amount)
	}
	return total
}

// CreditorTotal returns the sum of all creditor leg amounts.
func (j *JournalEntry) CreditorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, leg := range j.Creditors {
		total = total.Add(leg.Amount)
	}
	return total
}

// AccountIDs returns all account identifiers referenced by the entry's legs,
// without duplicates, in first-seen order.
func (j *JournalEntry) AccountIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(j.Debtors)+len(j.Creditors))
	for _, legs := range [][]Leg{j.Debtors, j.Creditors} {
		for _, leg := range legs {
			if !seen[leg.AccountID] {
				seen[leg.AccountID] = true
				ids = append(ids, leg.AccountID)
			}
		}
	}
	return ids
}

// TransactionType is a registry entry resolving a transaction-type code to a
// human-readable name.
type TransactionType struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
