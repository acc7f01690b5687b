package dto

import (
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest defines the payload for creating a ledger or sub-ledger.
// For sub-ledgers the type is inherited from the parent and may be omitted.
type CreateLedgerRequest struct {
	LedgerID            string `json:"ledgerID" binding:"required,max=34,identifier"`
	Type                string `json:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	ShowAccountsInChart bool   `json:"showAccountsInChart"`
}

// ModifyLedgerRequest defines the mutable ledger fields. Identifier and type
// are immutable and therefore absent.
type ModifyLedgerRequest struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	ShowAccountsInChart *bool   `json:"showAccountsInChart"`
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	LedgerID            string          `json:"ledgerID"`
	Type                string          `json:"type"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	ParentLedgerID      string          `json:"parentLedgerID,omitempty"`
	ShowAccountsInChart bool            `json:"showAccountsInChart"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy       string          `json:"lastUpdatedBy"`
}

// ListLedgersResponse is a paged ledger listing.
type ListLedgersResponse struct {
	Ledgers    []LedgerResponse `json:"ledgers"`
	TotalCount int64            `json:"totalCount"`
	PageIndex  int              `json:"pageIndex"`
	Size       int              `json:"size"`
}

// ToLedgerResponse converts a domain.Ledger to its response DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:            l.LedgerID,
		Type:                string(l.Type),
		Name:                l.Name,
		Description:         l.Description,
		ParentLedgerID:      l.ParentLedgerID,
		ShowAccountsInChart: l.ShowAccountsInChart,
		TotalValue:          l.TotalValue,
		CreatedAt:           l.CreatedAt,
		CreatedBy:           l.CreatedBy,
		LastUpdatedAt:       l.LastUpdatedAt,
		LastUpdatedBy:       l.LastUpdatedBy,
	}
}

// ChartOfAccountsEntryResponse is one row of the chart-of-accounts view.
type ChartOfAccountsEntryResponse struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level"`
}

// ToChartOfAccountsResponse converts chart entries to their response DTOs.
func ToChartOfAccountsResponse(entries []domain.ChartOfAccountsEntry) []ChartOfAccountsEntryResponse {
	out := make([]ChartOfAccountsEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ChartOfAccountsEntryResponse{
			Identifier:  e.Identifier,
			Name:        e.Name,
			Description: e.Description,
			Level:       e.Level,
		}
	}
	return out
}
