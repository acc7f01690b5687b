package models

// LedgerType defines the fundamental accounting family of a ledger.
type LedgerType string

const (
	Asset     LedgerType = "ASSET"
	Liability LedgerType = "LIABILITY"
	Equity    LedgerType = "EQUITY"
	Revenue   LedgerType = "REVENUE"
	Expense   LedgerType = "EXPENSE"
)

// Ledger is a node in the chart-of-accounts forest.
// ParentLedgerID is a nullable self-referencing foreign key; children are
// obtained by querying on it rather than via embedded child lists.
type Ledger struct {
	LedgerID            string     `db:"ledger_id"`
	Type                LedgerType `db:"ledger_type"`
	Name                string     `db:"name"`
	Description         string     `db:"description"`
	ParentLedgerID      string     `db:"parent_ledger_id"` // Nullable
	ShowAccountsInChart bool       `db:"show_accounts_in_chart"`
	AuditFields
}
