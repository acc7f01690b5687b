package repositories

import (
	"context"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger data.
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListRootLedgers retrieves all ledgers without a parent, sorted ascending by identifier.
	ListRootLedgers(ctx context.Context) ([]domain.Ledger, error)

	// ListChildLedgers retrieves the immediate sub-ledgers of a parent, sorted ascending by identifier.
	ListChildLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error)

	// ListLedgers retrieves a page of ledgers plus the unpaged total count.
	ListLedgers(ctx context.Context, term string, page pagination.Page) ([]domain.Ledger, int64, error)

	// CountChildLedgers returns the number of immediate sub-ledgers of a ledger.
	CountChildLedgers(ctx context.Context, ledgerID string) (int64, error)

	// TotalValue computes the signed sum of all descendant account balances,
	// transitively through child ledgers. A ledger with no descendants yields zero.
	TotalValue(ctx context.Context, ledgerID string) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for ledger data.
type LedgerWriter interface {
	// SaveLedger persists a new ledger.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// UpdateLedger updates a ledger's mutable fields (name, description, show flag).
	UpdateLedger(ctx context.Context, ledger domain.Ledger) error

	// DeleteLedger removes a ledger row.
	DeleteLedger(ctx context.Context, ledgerID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
