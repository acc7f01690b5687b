package dto

import (
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceEntryResponse is one ledger line of the trial balance.
type TrialBalanceEntryResponse struct {
	LedgerID   string          `json:"ledgerID"`
	Name       string          `json:"name"`
	Side       string          `json:"side"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// TrialBalanceResponse is the full trial balance statement.
type TrialBalanceResponse struct {
	Entries     []TrialBalanceEntryResponse `json:"entries"`
	DebitTotal  decimal.Decimal             `json:"debitTotal"`
	CreditTotal decimal.Decimal             `json:"creditTotal"`
}

// StatementEntryResponse is one sub-ledger line of a statement section.
type StatementEntryResponse struct {
	LedgerID    string          `json:"ledgerID"`
	Description string          `json:"description,omitempty"`
	Value       decimal.Decimal `json:"value"`
}

// StatementSectionResponse groups the sub-ledgers of one root ledger.
type StatementSectionResponse struct {
	LedgerID    string                   `json:"ledgerID"`
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Entries     []StatementEntryResponse `json:"entries"`
	Subtotal    decimal.Decimal          `json:"subtotal"`
}

// IncomeStatementResponse is the income statement.
type IncomeStatementResponse struct {
	Sections      []StatementSectionResponse `json:"sections"`
	GrossProfit   decimal.Decimal            `json:"grossProfit"`
	TotalExpenses decimal.Decimal            `json:"totalExpenses"`
	NetIncome     decimal.Decimal            `json:"netIncome"`
}

// FinancialConditionResponse is the statement of financial condition.
type FinancialConditionResponse struct {
	Sections                    []StatementSectionResponse `json:"sections"`
	TotalAssets                 decimal.Decimal            `json:"totalAssets"`
	TotalEquitiesAndLiabilities decimal.Decimal            `json:"totalEquitiesAndLiabilities"`
}

// ToTrialBalanceResponse converts a domain.TrialBalance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	entries := make([]TrialBalanceEntryResponse, len(tb.Entries))
	for i, e := range tb.Entries {
		entries[i] = TrialBalanceEntryResponse{
			LedgerID:   e.LedgerID,
			Name:       e.Name,
			Side:       string(e.Side),
			TotalValue: e.TotalValue,
		}
	}
	return TrialBalanceResponse{
		Entries:     entries,
		DebitTotal:  tb.DebitTotal,
		CreditTotal: tb.CreditTotal,
	}
}

func toStatementSections(sections []domain.StatementSection) []StatementSectionResponse {
	out := make([]StatementSectionResponse, len(sections))
	for i, s := range sections {
		entries := make([]StatementEntryResponse, len(s.Entries))
		for j, e := range s.Entries {
			entries[j] = StatementEntryResponse{
				LedgerID:    e.LedgerID,
				Description: e.Description,
				Value:       e.Value,
			}
		}
		out[i] = StatementSectionResponse{
			LedgerID:    s.LedgerID,
			Type:        string(s.Type),
			Description: s.Description,
			Entries:     entries,
			Subtotal:    s.Subtotal,
		}
	}
	return out
}

// ToIncomeStatementResponse converts a domain.IncomeStatement to its response DTO.
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		Sections:      toStatementSections(is.Sections),
		GrossProfit:   is.GrossProfit,
		TotalExpenses: is.TotalExpenses,
		NetIncome:     is.NetIncome,
	}
}

// ToFinancialConditionResponse converts a domain.FinancialCondition to its response DTO.
func ToFinancialConditionResponse(fc *domain.FinancialCondition) FinancialConditionResponse {
	return FinancialConditionResponse{
		Sections:                    toStatementSections(fc.Sections),
		TotalAssets:                 fc.TotalAssets,
		TotalEquitiesAndLiabilities: fc.TotalEquitiesAndLiabilities,
	}
}
