package dto

import (
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LegRequest is one debit or credit side of a journal entry.
type LegRequest struct {
	AccountID string          `json:"accountID" binding:"required,max=34,identifier"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// CreateJournalEntryRequest defines the payload for posting a journal entry.
// Debtor and creditor totals must be exactly equal.
type CreateJournalEntryRequest struct {
	TransactionID   string       `json:"transactionID" binding:"required,max=34,identifier"`
	TransactionDate time.Time    `json:"transactionDate" binding:"required"`
	TransactionType string       `json:"transactionType"`
	Note            string       `json:"note"`
	Message         string       `json:"message"`
	Debtors         []LegRequest `json:"debtors" binding:"required,min=1,dive"`
	Creditors       []LegRequest `json:"creditors" binding:"required,min=1,dive"`
}

// ReleaseJournalEntryRequest defines the payload for the release transition.
type ReleaseJournalEntryRequest struct {
	Comment string `json:"comment"`
}

// ListJournalEntriesParams bundles the journal query's date range and its
// application-layer point filters.
type ListJournalEntriesParams struct {
	From      time.Time
	To        time.Time
	AccountID string           // Optional: match entries touching this account
	Amount    *decimal.Decimal // Optional: match entries with this exact total debit amount
}

// LegResponse mirrors LegRequest on the read side.
type LegResponse struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	TransactionID       string        `json:"transactionID"`
	TransactionDate     time.Time     `json:"transactionDate"`
	TransactionType     string        `json:"transactionType,omitempty"`
	TransactionTypeName string        `json:"transactionTypeName,omitempty"`
	Clerk               string        `json:"clerk"`
	Note                string        `json:"note,omitempty"`
	Message             string        `json:"message,omitempty"`
	Debtors             []LegResponse `json:"debtors"`
	Creditors           []LegResponse `json:"creditors"`
	State               string        `json:"state"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// ListJournalEntriesResponse is a paged journal entry listing.
type ListJournalEntriesResponse struct {
	Entries    []JournalEntryResponse `json:"entries"`
	TotalCount int64                  `json:"totalCount"`
	PageIndex  int                    `json:"pageIndex"`
	Size       int                    `json:"size"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	toLegs := func(legs []domain.Leg) []LegResponse {
		out := make([]LegResponse, len(legs))
		for i, leg := range legs {
			out[i] = LegResponse{AccountID: leg.AccountID, Amount: leg.Amount}
		}
		return out
	}
	return JournalEntryResponse{
		TransactionID:       j.TransactionID,
		TransactionDate:     j.TransactionDate,
		TransactionType:     j.TransactionType,
		TransactionTypeName: j.TransactionTypeName,
		Clerk:               j.Clerk,
		Note:                j.Note,
		Message:             j.Message,
		Debtors:             toLegs(j.Debtors),
		Creditors:           toLegs(j.Creditors),
		State:               string(j.State),
		CreatedAt:           j.CreatedAt,
	}
}
