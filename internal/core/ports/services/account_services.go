package services

import (
	"context"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// AccountSvcFacade defines the account-side operations of the posting engine.
type AccountSvcFacade interface {
	// CreateAccount creates an account under an existing ledger with zero
	// balance and OPEN state.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creator string) (*domain.Account, error)

	// GetAccount retrieves an account by its identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by identifier.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a filtered page of accounts plus the total count.
	ListAccounts(ctx context.Context, filter portsrepo.AccountFilter, page pagination.Page) ([]domain.Account, int64, error)

	// ModifyAccount updates mutable account fields.
	ModifyAccount(ctx context.Context, accountID string, req dto.ModifyAccountRequest, updater string) (*domain.Account, error)

	// DeleteAccount removes an account with no recorded entries and no inbound
	// reference-account links.
	DeleteAccount(ctx context.Context, accountID string) error

	// ExecuteAccountCommand applies a LOCK/UNLOCK/CLOSE/REOPEN command, records
	// the audit entry, and returns the account in its new state.
	ExecuteAccountCommand(ctx context.Context, accountID string, action domain.CommandAction, comment, actor string) (*domain.Account, error)

	// ListAccountCommands retrieves the executed commands for an account.
	ListAccountCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error)

	// ListAccountEntries retrieves the recorded entries for an account within a
	// date range.
	ListAccountEntries(ctx context.Context, accountID string, from, to time.Time, page pagination.Page) ([]domain.AccountEntry, int64, error)
}
