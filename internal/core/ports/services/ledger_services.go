package services

import (
	"context"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// LedgerSvcFacade defines the chart-of-accounts hierarchy operations.
type LedgerSvcFacade interface {
	// CreateLedger creates a new root ledger. Re-submitting an identical create
	// is a no-op; a create with the same identifier but differing fields is a
	// reported mismatch.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error)

	// AddSubLedger attaches a new sub-ledger under an existing parent. The
	// sub-ledger inherits the parent's account family.
	AddSubLedger(ctx context.Context, parentLedgerID string, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error)

	// GetLedger retrieves a ledger together with its derived total value.
	GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListLedgers retrieves a page of ledgers plus the total count.
	ListLedgers(ctx context.Context, term string, page pagination.Page) ([]domain.Ledger, int64, error)

	// ListSubLedgers retrieves the immediate sub-ledgers of a ledger.
	ListSubLedgers(ctx context.Context, ledgerID string) ([]domain.Ledger, error)

	// ModifyLedger updates mutable ledger fields; identifier and type are immutable.
	ModifyLedger(ctx context.Context, ledgerID string, req dto.ModifyLedgerRequest, updater string) (*domain.Ledger, error)

	// DeleteLedger removes a ledger with no sub-ledgers and no accounts.
	DeleteLedger(ctx context.Context, ledgerID string) error

	// GetChartOfAccounts returns the depth-first chart-of-accounts view.
	GetChartOfAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error)
}
