package repositories

import (
	"context"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
)

// JournalEntryReader defines read operations over the time-bucketed journal store.
type JournalEntryReader interface {
	// FindBucketByTransactionID resolves a transaction identifier to its date
	// bucket via the lookup index. Returns apperrors.ErrNotFound when the
	// identifier is unknown.
	FindBucketByTransactionID(ctx context.Context, transactionID string) (string, error)

	// FindJournalEntryByID retrieves one entry by (bucket, transaction identifier).
	FindJournalEntryByID(ctx context.Context, bucket, transactionID string) (*domain.JournalEntry, error)

	// ListJournalEntries scans every date bucket between from and to inclusive
	// and returns the merged entries ordered ascending by transaction date.
	// Point filters are applied by the caller, not pushed into the store.
	ListJournalEntries(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// SaveJournalEntry persists a PENDING entry into its date bucket, then writes
	// the transaction-id lookup row. The two writes are not atomic; a lookup
	// write failure is surfaced to the caller for operator-visible handling.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReleaseJournalEntry atomically applies the entry's legs (locking the
	// touched accounts, updating balances, recording account entries) and
	// transitions the entry to PROCESSED.
	ReleaseJournalEntry(ctx context.Context, entry domain.JournalEntry, releasedBy string, now time.Time) error

	// RepairLookupIndex scans the buckets in [from, to] and re-inserts lookup
	// rows missing after a failed dual write. Returns the number repaired.
	RepairLookupIndex(ctx context.Context, from, to time.Time) (int, error)
}

// JournalRepositoryFacade combines journal store read and write interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends the facade with transaction control.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
