package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// identifierPattern restricts ledger and account identifiers to characters
// that survive URL paths without escaping.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9._\-]+$`)

const maxIdentifierLength = 34

func validateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("%w: identifier is required", apperrors.ErrValidation)
	}
	if len(id) > maxIdentifierLength {
		return fmt.Errorf("%w: identifier %q exceeds %d characters", apperrors.ErrValidation, id, maxIdentifierLength)
	}
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("%w: identifier %q contains characters outside [A-Za-z0-9._-]", apperrors.ErrValidation, id)
	}
	return nil
}

// ledgerService maintains the chart-of-accounts hierarchy.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates the ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error) {
	return s.createLedger(ctx, req, "", creator)
}

func (s *ledgerService) AddSubLedger(ctx context.Context, parentLedgerID string, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parent, err := s.ledgerRepo.FindLedgerByID(ctx, parentLedgerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load parent ledger", slog.String("error", err.Error()), slog.String("ledger_id", parentLedgerID))
		}
		return nil, err
	}

	// A sub-ledger inherits the parent's account family; a conflicting
	// explicit type is rejected rather than silently overridden.
	if req.Type != "" && domain.LedgerType(req.Type) != parent.Type {
		return nil, fmt.Errorf("%w: sub-ledger type %s conflicts with parent family %s", apperrors.ErrValidation, req.Type, parent.Type)
	}
	req.Type = string(parent.Type)

	return s.createLedger(ctx, req, parent.LedgerID, creator)
}

func (s *ledgerService) createLedger(ctx context.Context, req dto.CreateLedgerRequest, parentLedgerID, creator string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateIdentifier(req.LedgerID); err != nil {
		return nil, err
	}
	ledgerType := domain.LedgerType(req.Type)
	if !domain.ValidLedgerType(ledgerType) {
		return nil, fmt.Errorf("%w: unknown ledger type %q", apperrors.ErrValidation, req.Type)
	}

	existing, err := s.ledgerRepo.FindLedgerByID(ctx, req.LedgerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing ledger", slog.String("error", err.Error()), slog.String("ledger_id", req.LedgerID))
		return nil, err
	}
	if existing != nil {
		// Re-submitting an identical create is a no-op so that clients can
		// retry safely; anything else on a taken identifier is a conflict.
		if existing.Type == ledgerType &&
			existing.Name == req.Name &&
			existing.Description == req.Description &&
			existing.ParentLedgerID == parentLedgerID &&
			existing.ShowAccountsInChart == req.ShowAccountsInChart {
			logger.Info("Ledger create resubmitted with identical fields, returning existing", slog.String("ledger_id", existing.LedgerID))
			return existing, nil
		}
		return nil, fmt.Errorf("%w: ledger %s already exists with different fields", apperrors.ErrDuplicate, req.LedgerID)
	}

	now := time.Now()
	ledger := domain.Ledger{
		LedgerID:            req.LedgerID,
		Type:                ledgerType,
		Name:                req.Name,
		Description:         req.Description,
		ParentLedgerID:      parentLedgerID,
		ShowAccountsInChart: req.ShowAccountsInChart,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledger.LedgerID))
		return nil, err
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("type", string(ledger.Type)))
	return &ledger, nil
}

func (s *ledgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		}
		return nil, err
	}

	total, err := s.ledgerRepo.TotalValue(ctx, ledgerID)
	if err != nil {
		logger.Error("Failed to compute ledger total value", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, err
	}
	ledger.TotalValue = total
	return ledger, nil
}

func (s *ledgerService) ListLedgers(ctx context.Context, term string, page pagination.Page) ([]domain.Ledger, int64, error) {
	return s.ledgerRepo.ListLedgers(ctx, term, page)
}

func (s *ledgerService) ListSubLedgers(ctx context.Context, ledgerID string) ([]domain.Ledger, error) {
	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListChildLedgers(ctx, ledgerID)
}

func (s *ledgerService) ModifyLedger(ctx context.Context, ledgerID string, req dto.ModifyLedgerRequest, updater string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != ledger.Name {
		ledger.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != ledger.Description {
		ledger.Description = *req.Description
		changed = true
	}
	if req.ShowAccountsInChart != nil && *req.ShowAccountsInChart != ledger.ShowAccountsInChart {
		ledger.ShowAccountsInChart = *req.ShowAccountsInChart
		changed = true
	}
	if !changed {
		return ledger, nil
	}

	ledger.LastUpdatedAt = time.Now()
	ledger.LastUpdatedBy = updater

	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger); err != nil {
		logger.Error("Failed to update ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, err
	}
	return ledger, nil
}

func (s *ledgerService) DeleteLedger(ctx context.Context, ledgerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID); err != nil {
		return err
	}

	childCount, err := s.ledgerRepo.CountChildLedgers(ctx, ledgerID)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return fmt.Errorf("%w: ledger %s has %d sub-ledgers", apperrors.ErrReferenceExists, ledgerID, childCount)
	}

	accountCount, err := s.accountRepo.CountAccountsByLedger(ctx, ledgerID)
	if err != nil {
		return err
	}
	if accountCount > 0 {
		return fmt.Errorf("%w: ledger %s has %d accounts", apperrors.ErrReferenceExists, ledgerID, accountCount)
	}

	if err := s.ledgerRepo.DeleteLedger(ctx, ledgerID); err != nil {
		logger.Error("Failed to delete ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return err
	}
	logger.Info("Ledger deleted", slog.String("ledger_id", ledgerID))
	return nil
}

// chartItem is one sortable child slot during the chart walk: either an
// account leaf or a sub-ledger subtree.
type chartItem struct {
	identifier string
	account    *domain.Account
	ledger     *domain.Ledger
}

func (s *ledgerService) GetChartOfAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	roots, err := s.ledgerRepo.ListRootLedgers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ChartOfAccountsEntry, 0, len(roots)*4)
	for i := range roots {
		if err := s.appendChartSubtree(ctx, &roots[i], 0, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// appendChartSubtree emits the ledger itself, then its accounts and
// sub-ledgers merged into one identifier-sorted sequence one level deeper.
func (s *ledgerService) appendChartSubtree(ctx context.Context, ledger *domain.Ledger, level int, entries *[]domain.ChartOfAccountsEntry) error {
	*entries = append(*entries, domain.ChartOfAccountsEntry{
		Identifier:  ledger.LedgerID,
		Name:        ledger.Name,
		Description: ledger.Description,
		Level:       level,
	})

	children, err := s.ledgerRepo.ListChildLedgers(ctx, ledger.LedgerID)
	if err != nil {
		return err
	}

	items := make([]chartItem, 0, len(children))
	for i := range children {
		items = append(items, chartItem{identifier: children[i].LedgerID, ledger: &children[i]})
	}

	if ledger.ShowAccountsInChart {
		accounts, err := s.accountRepo.ListAccountsByLedger(ctx, ledger.LedgerID)
		if err != nil {
			return err
		}
		for i := range accounts {
			items = append(items, chartItem{identifier: accounts[i].AccountID, account: &accounts[i]})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].identifier < items[j].identifier })

	for _, item := range items {
		if item.account != nil {
			*entries = append(*entries, domain.ChartOfAccountsEntry{
				Identifier: item.account.AccountID,
				Name:       item.account.Name,
				Level:      level + 1,
			})
			continue
		}
		if err := s.appendChartSubtree(ctx, item.ledger, level+1, entries); err != nil {
			return err
		}
	}
	return nil
}
