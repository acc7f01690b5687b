package repositories

import (
	"context"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Term     string              // Matches identifier or name
	Type     domain.LedgerType   // Zero value matches all
	State    domain.AccountState // Zero value matches all
	LedgerID string              // Zero value matches all
}

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a filtered page of accounts plus the unpaged total count.
	ListAccounts(ctx context.Context, filter AccountFilter, page pagination.Page) ([]domain.Account, int64, error)

	// ListAccountsByLedger retrieves all accounts owned by a ledger, sorted ascending by identifier.
	ListAccountsByLedger(ctx context.Context, ledgerID string) ([]domain.Account, error)

	// CountAccountsByLedger returns the number of accounts owned by a ledger.
	CountAccountsByLedger(ctx context.Context, ledgerID string) (int64, error)

	// CountEntriesByAccount returns the number of recorded entries for an account.
	CountEntriesByAccount(ctx context.Context, accountID string) (int64, error)

	// CountReferencingAccounts returns the number of accounts whose
	// reference-account link points at the given account.
	CountReferencingAccounts(ctx context.Context, accountID string) (int64, error)

	// ListAccountEntries retrieves the entries recorded against an account within
	// a date range, plus the unpaged total count.
	ListAccountEntries(ctx context.Context, accountID string, from, to time.Time, page pagination.Page) ([]domain.AccountEntry, int64, error)

	// ListAccountCommands retrieves the executed state-machine commands for an account.
	ListAccountCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, accountID string) error

	// UpdateAccountState persists a state transition together with its audit
	// command. The update only applies when the account is still in from;
	// a concurrent command that moved it away surfaces as ErrIllegalTransition.
	UpdateAccountState(ctx context.Context, accountID string, from, to domain.AccountState, command domain.AccountCommand) error
}

// AccountTransactionSupport defines operations used inside a journal release transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks the rows for update.
	// Must be called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within
	// the given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// SaveAccountEntriesInTx inserts immutable account entries within the given transaction.
	SaveAccountEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.AccountEntry) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
