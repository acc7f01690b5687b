package domain

import "github.com/shopspring/decimal"

// TrialBalanceEntry is one ledger line of a trial balance.
type TrialBalanceEntry struct {
	LedgerID   string          `json:"ledgerID"`
	Name       string          `json:"name"`
	Side       BalanceSide     `json:"side"` // DEBIT family or CREDIT family
	TotalValue decimal.Decimal `json:"totalValue"`
}

// TrialBalance proves that total debits equal total credits across ledgers.
type TrialBalance struct {
	Entries     []TrialBalanceEntry `json:"entries"`
	DebitTotal  decimal.Decimal     `json:"debitTotal"`
	CreditTotal decimal.Decimal     `json:"creditTotal"`
}

// StatementEntry is one sub-ledger line in a statement section.
type StatementEntry struct {
	LedgerID    string          `json:"ledgerID"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// StatementSection groups the immediate sub-ledgers of one root ledger.
type StatementSection struct {
	LedgerID    string           `json:"ledgerID"`
	Type        LedgerType       `json:"type"`
	Description string           `json:"description"`
	Entries     []StatementEntry `json:"entries"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

// IncomeStatement reports revenue against expenses.
type IncomeStatement struct {
	Sections      []StatementSection `json:"sections"`
	GrossProfit   decimal.Decimal    `json:"grossProfit"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetIncome     decimal.Decimal    `json:"netIncome"`
}

// FinancialCondition reports assets against equities and liabilities.
// The accounting identity requires TotalAssets == TotalEquitiesAndLiabilities.
type FinancialCondition struct {
	Sections                    []StatementSection `json:"sections"`
	TotalAssets                 decimal.Decimal    `json:"totalAssets"`
	TotalEquitiesAndLiabilities decimal.Decimal    `json:"totalEquitiesAndLiabilities"`
}

// ChartOfAccountsEntry is one node of the depth-first chart-of-accounts view.
// Level starts at 0 for root ledgers.
type ChartOfAccountsEntry struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}
