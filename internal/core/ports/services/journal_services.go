package services

import (
	"context"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// JournalSvcFacade defines the journal posting engine operations.
type JournalSvcFacade interface {
	// CreateJournalEntry validates a journal entry (duplicate identifier, leg
	// accounts exist and are not closed, debtor total equals creditor total)
	// and persists it in PENDING state. PENDING entries are balance-inert.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, clerk string) (*domain.JournalEntry, error)

	// ReleaseJournalEntry applies a PENDING entry's legs to account balances
	// atomically and transitions it to PROCESSED.
	ReleaseJournalEntry(ctx context.Context, transactionID, comment, clerk string) error

	// GetJournalEntry retrieves an entry via the transaction-id lookup index,
	// resolving its transaction-type name.
	GetJournalEntry(ctx context.Context, transactionID string) (*domain.JournalEntry, error)

	// ListJournalEntries scans the date buckets in the params' range and applies
	// the account/amount point filters in the application layer.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams, page pagination.Page) ([]domain.JournalEntry, int64, error)

	// ReconcileLookupIndex repairs lookup rows lost to failed dual writes in the
	// given bucket range. Returns the number of repaired rows.
	ReconcileLookupIndex(ctx context.Context, from, to time.Time) (int, error)
}

// ReportingSvcFacade derives financial statements by walking the ledger
// hierarchy and reading rolled-up totals.
type ReportingSvcFacade interface {
	// TrialBalance classifies ledgers into debit and credit families and proves
	// debitTotal == creditTotal. With subLedgerForm the immediate sub-ledgers of
	// each root are reported instead of the roots; with suppressZero, ledgers
	// whose total value is exactly zero are omitted.
	TrialBalance(ctx context.Context, subLedgerForm, suppressZero bool) (*domain.TrialBalance, error)

	// IncomeStatement walks REVENUE and EXPENSE root ledgers.
	IncomeStatement(ctx context.Context) (*domain.IncomeStatement, error)

	// FinancialCondition walks ASSET, EQUITY and LIABILITY root ledgers.
	FinancialCondition(ctx context.Context) (*domain.FinancialCondition, error)
}

// TransactionTypeSvcFacade maintains the transaction type registry.
type TransactionTypeSvcFacade interface {
	CreateTransactionType(ctx context.Context, req dto.CreateTransactionTypeRequest, creator string) (*domain.TransactionType, error)
	ModifyTransactionType(ctx context.Context, code string, req dto.ModifyTransactionTypeRequest, updater string) (*domain.TransactionType, error)
	GetTransactionType(ctx context.Context, code string) (*domain.TransactionType, error)
	ListTransactionTypes(ctx context.Context, term string, page pagination.Page) ([]domain.TransactionType, int64, error)
}
