package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService manages account lifecycle and read access. Balances are
// never written here; only the journal release path touches them.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creator string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateIdentifier(req.AccountID); err != nil {
		return nil, err
	}

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, req.LedgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger %s does not exist", apperrors.ErrValidation, req.LedgerID)
		}
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing account", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}
	if existing != nil {
		// Re-submitting an identical create is a no-op so that clients can
		// retry safely; anything else on a taken identifier is a conflict.
		if existing.LedgerID == req.LedgerID &&
			existing.Name == req.Name &&
			existing.ReferenceAccountID == req.ReferenceAccountID &&
			slices.Equal(existing.Holders, req.Holders) &&
			slices.Equal(existing.SignatureAuthorities, req.SignatureAuthorities) {
			logger.Info("Account create resubmitted with identical fields, returning existing", slog.String("account_id", existing.AccountID))
			return existing, nil
		}
		return nil, fmt.Errorf("%w: account %s already exists with different fields", apperrors.ErrDuplicate, req.AccountID)
	}

	if req.ReferenceAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, req.ReferenceAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: reference account %s does not exist", apperrors.ErrValidation, req.ReferenceAccountID)
			}
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:            req.AccountID,
		Type:                 ledger.Type,
		Name:                 req.Name,
		LedgerID:             ledger.LedgerID,
		Balance:              decimal.Zero,
		Holders:              req.Holders,
		SignatureAuthorities: req.SignatureAuthorities,
		ReferenceAccountID:   req.ReferenceAccountID,
		State:                domain.AccountOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("ledger_id", account.LedgerID))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter, page pagination.Page) ([]domain.Account, int64, error) {
	return s.accountRepo.ListAccounts(ctx, filter, page)
}

func (s *accountService) ModifyAccount(ctx context.Context, accountID string, req dto.ModifyAccountRequest, updater string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		changed = true
	}
	if req.Holders != nil {
		account.Holders = *req.Holders
		changed = true
	}
	if req.SignatureAuthorities != nil {
		account.SignatureAuthorities = *req.SignatureAuthorities
		changed = true
	}
	if req.ReferenceAccountID != nil && *req.ReferenceAccountID != account.ReferenceAccountID {
		if *req.ReferenceAccountID != "" {
			if *req.ReferenceAccountID == accountID {
				return nil, fmt.Errorf("%w: account cannot reference itself", apperrors.ErrValidation)
			}
			if _, err := s.accountRepo.FindAccountByID(ctx, *req.ReferenceAccountID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: reference account %s does not exist", apperrors.ErrValidation, *req.ReferenceAccountID)
				}
				return nil, err
			}
		}
		account.ReferenceAccountID = *req.ReferenceAccountID
		changed = true
	}
	if !changed {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updater

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	entryCount, err := s.accountRepo.CountEntriesByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if entryCount > 0 {
		return fmt.Errorf("%w: account %s has %d recorded entries", apperrors.ErrReferenceExists, accountID, entryCount)
	}

	refCount, err := s.accountRepo.CountReferencingAccounts(ctx, accountID)
	if err != nil {
		return err
	}
	if refCount > 0 {
		return fmt.Errorf("%w: account %s is referenced by %d accounts", apperrors.ErrReferenceExists, accountID, refCount)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}
	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) ExecuteAccountCommand(ctx context.Context, accountID string, action domain.CommandAction, comment, actor string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.NextAccountState(account.State, action)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not allowed in state %s", apperrors.ErrIllegalTransition, action, account.State)
	}

	now := time.Now()
	command := domain.AccountCommand{
		CommandID: uuid.NewString(),
		AccountID: accountID,
		Action:    action,
		Comment:   comment,
		CreatedAt: now,
		CreatedBy: actor,
	}

	if err := s.accountRepo.UpdateAccountState(ctx, accountID, account.State, next, command); err != nil {
		logger.Error("Failed to apply account command", slog.String("error", err.Error()),
			slog.String("account_id", accountID), slog.String("action", string(action)))
		return nil, err
	}

	logger.Info("Account command applied", slog.String("account_id", accountID),
		slog.String("action", string(action)), slog.String("state", string(next)))

	account.State = next
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor
	return account, nil
}

func (s *accountService) ListAccountCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountCommands(ctx, accountID)
}

func (s *accountService) ListAccountEntries(ctx context.Context, accountID string, from, to time.Time, page pagination.Page) ([]domain.AccountEntry, int64, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, 0, err
	}
	return s.accountRepo.ListAccountEntries(ctx, accountID, from, to, page)
}
