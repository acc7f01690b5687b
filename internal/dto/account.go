package dto

import (
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
// The account inherits its type from the owning ledger; initial balance is
// zero and initial state is OPEN.
type CreateAccountRequest struct {
	AccountID            string   `json:"accountID" binding:"required,max=34,identifier"`
	LedgerID             string   `json:"ledgerID" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Holders              []string `json:"holders"`
	SignatureAuthorities []string `json:"signatureAuthorities"`
	ReferenceAccountID   string   `json:"referenceAccountID"`
}

// ModifyAccountRequest defines the mutable account fields.
type ModifyAccountRequest struct {
	Name                 *string   `json:"name"`
	Holders              *[]string `json:"holders"`
	SignatureAuthorities *[]string `json:"signatureAuthorities"`
	ReferenceAccountID   *string   `json:"referenceAccountID"`
}

// AccountCommandRequest defines a state-machine command on an account.
type AccountCommandRequest struct {
	Action  string `json:"action" binding:"required,oneof=LOCK UNLOCK CLOSE REOPEN"`
	Comment string `json:"comment"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID            string          `json:"accountID"`
	Type                 string          `json:"type"`
	Name                 string          `json:"name"`
	LedgerID             string          `json:"ledgerID"`
	Balance              decimal.Decimal `json:"balance"`
	Holders              []string        `json:"holders"`
	SignatureAuthorities []string        `json:"signatureAuthorities"`
	ReferenceAccountID   string          `json:"referenceAccountID,omitempty"`
	State                string          `json:"state"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy        string          `json:"lastUpdatedBy"`
}

// ListAccountsResponse is a paged account listing.
type ListAccountsResponse struct {
	Accounts   []AccountResponse `json:"accounts"`
	TotalCount int64             `json:"totalCount"`
	PageIndex  int               `json:"pageIndex"`
	Size       int               `json:"size"`
}

// AccountEntryResponse is one recorded journal leg against an account.
type AccountEntryResponse struct {
	EntryID         string          `json:"entryID"`
	Side            string          `json:"side"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	Message         string          `json:"message,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// ListAccountEntriesResponse is a paged account entry listing.
type ListAccountEntriesResponse struct {
	Entries    []AccountEntryResponse `json:"entries"`
	TotalCount int64                  `json:"totalCount"`
	PageIndex  int                    `json:"pageIndex"`
	Size       int                    `json:"size"`
}

// AccountCommandResponse is one executed state-machine command.
type AccountCommandResponse struct {
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:            a.AccountID,
		Type:                 string(a.Type),
		Name:                 a.Name,
		LedgerID:             a.LedgerID,
		Balance:              a.Balance,
		Holders:              a.Holders,
		SignatureAuthorities: a.SignatureAuthorities,
		ReferenceAccountID:   a.ReferenceAccountID,
		State:                string(a.State),
		CreatedAt:            a.CreatedAt,
		CreatedBy:            a.CreatedBy,
		LastUpdatedAt:        a.LastUpdatedAt,
		LastUpdatedBy:        a.LastUpdatedBy,
	}
}

// ToAccountEntryResponse converts a domain.AccountEntry to its response DTO.
func ToAccountEntryResponse(e domain.AccountEntry) AccountEntryResponse {
	return AccountEntryResponse{
		EntryID:         e.EntryID,
		Side:            string(e.Side),
		Amount:          e.Amount,
		Balance:         e.Balance,
		Message:         e.Message,
		TransactionDate: e.TransactionDate,
	}
}

// ToAccountCommandResponse converts a domain.AccountCommand to its response DTO.
func ToAccountCommandResponse(c domain.AccountCommand) AccountCommandResponse {
	return AccountCommandResponse{
		Action:    string(c.Action),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		CreatedBy: c.CreatedBy,
	}
}
