package repositories

import (
	"context"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// TransactionTypeRepositoryFacade defines operations for the transaction type registry.
type TransactionTypeRepositoryFacade interface {
	// FindTransactionTypeByCode retrieves a registry entry by its code.
	FindTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error)

	// FindTransactionTypesByCodes retrieves multiple registry entries by code.
	FindTransactionTypesByCodes(ctx context.Context, codes []string) (map[string]domain.TransactionType, error)

	// ListTransactionTypes retrieves a page of registry entries plus the total count.
	ListTransactionTypes(ctx context.Context, term string, page pagination.Page) ([]domain.TransactionType, int64, error)

	// SaveTransactionType persists a new registry entry.
	SaveTransactionType(ctx context.Context, txType domain.TransactionType) error

	// UpdateTransactionType updates a registry entry's name and description.
	UpdateTransactionType(ctx context.Context, txType domain.TransactionType) error
}
