package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/utils/accounting"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// maxQueryRangeDays caps journal range queries; each day in the range costs
// one bucket in the store scan.
const maxQueryRangeDays = 366

// journalService is the posting engine: it validates entries on intake and
// applies them to balances on release.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	txTypeRepo  portsrepo.TransactionTypeRepositoryFacade
}

// NewJournalService creates the journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, txTypeRepo portsrepo.TransactionTypeRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		txTypeRepo:  txTypeRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func toDomainLegs(reqs []dto.LegRequest) []domain.Leg {
	legs := make([]domain.Leg, len(reqs))
	for i, r := range reqs {
		legs[i] = domain.Leg{AccountID: r.AccountID, Amount: r.Amount}
	}
	return legs
}

func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, clerk string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateIdentifier(req.TransactionID); err != nil {
		return nil, err
	}

	if _, err := s.journalRepo.FindBucketByTransactionID(ctx, req.TransactionID); err == nil {
		return nil, fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, req.TransactionID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for duplicate journal entry", slog.String("error", err.Error()), slog.String("transaction_id", req.TransactionID))
		return nil, err
	}

	now := time.Now()
	entry := domain.JournalEntry{
		TransactionID:   req.TransactionID,
		TransactionDate: req.TransactionDate,
		TransactionType: req.TransactionType,
		Clerk:           clerk,
		Note:            req.Note,
		Message:         req.Message,
		Debtors:         toDomainLegs(req.Debtors),
		Creditors:       toDomainLegs(req.Creditors),
		State:           domain.Pending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     clerk,
			LastUpdatedAt: now,
			LastUpdatedBy: clerk,
		},
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.AccountIDs())
	if err != nil {
		return nil, err
	}
	for _, accountID := range entry.AccountIDs() {
		account, ok := accounts[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by a leg does not exist", apperrors.ErrNotFound, accountID)
		}
		if account.State == domain.AccountClosed {
			return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrValidation, accountID)
		}
	}

	if err := accounting.ValidateEntryBalance(&entry); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if entry.TransactionType != "" {
		if _, err := s.txTypeRepo.FindTransactionTypeByCode(ctx, entry.TransactionType); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: transaction type %s is not registered", apperrors.ErrValidation, entry.TransactionType)
			}
			return nil, err
		}
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("transaction_id", entry.TransactionID))
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("amount", entry.DebtorTotal().String()),
	)
	return &entry, nil
}

func (s *journalService) ReleaseJournalEntry(ctx context.Context, transactionID, comment, clerk string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.findEntry(ctx, transactionID)
	if err != nil {
		return err
	}
	if entry.State != domain.Pending {
		return fmt.Errorf("%w: journal entry %s is already %s", apperrors.ErrIllegalTransition, transactionID, entry.State)
	}

	// The release comment becomes the message recorded on each account entry.
	if comment != "" {
		entry.Message = comment
	}

	if err := s.journalRepo.ReleaseJournalEntry(ctx, *entry, clerk, time.Now()); err != nil {
		logger.Error("Failed to release journal entry", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Journal entry released", slog.String("transaction_id", transactionID), slog.String("clerk", clerk))
	return nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	entry, err := s.findEntry(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	s.resolveTypeNames(ctx, []*domain.JournalEntry{entry})
	return entry, nil
}

func (s *journalService) findEntry(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	bucket, err := s.journalRepo.FindBucketByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.journalRepo.FindJournalEntryByID(ctx, bucket, transactionID)
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams, page pagination.Page) ([]domain.JournalEntry, int64, error) {
	if params.From.IsZero() || params.To.IsZero() {
		return nil, 0, fmt.Errorf("%w: from and to dates are required", apperrors.ErrValidation)
	}
	if params.To.Before(params.From) {
		return nil, 0, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}
	if params.To.Sub(params.From) > maxQueryRangeDays*24*time.Hour {
		return nil, 0, fmt.Errorf("%w: date range exceeds %d days", apperrors.ErrValidation, maxQueryRangeDays)
	}

	entries, err := s.journalRepo.ListJournalEntries(ctx, params.From, params.To)
	if err != nil {
		return nil, 0, err
	}

	// Point filters are evaluated here rather than in the store; bucket scans
	// only narrow by date. The repository may retain the slice it returned, so
	// filter into a fresh one.
	filtered := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if params.AccountID != "" && !touchesAccount(&entry, params.AccountID) {
			continue
		}
		if params.Amount != nil && !entry.DebtorTotal().Equal(*params.Amount) {
			continue
		}
		filtered = append(filtered, entry)
	}

	total := int64(len(filtered))
	paged := pagination.Slice(filtered, page)

	ptrs := make([]*domain.JournalEntry, len(paged))
	for i := range paged {
		ptrs[i] = &paged[i]
	}
	s.resolveTypeNames(ctx, ptrs)

	return paged, total, nil
}

func touchesAccount(entry *domain.JournalEntry, accountID string) bool {
	for _, id := range entry.AccountIDs() {
		if id == accountID {
			return true
		}
	}
	return false
}

// resolveTypeNames fills TransactionTypeName from the registry in one batch.
// A missing registry row leaves the name empty instead of failing the read.
func (s *journalService) resolveTypeNames(ctx context.Context, entries []*domain.JournalEntry) {
	codes := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.TransactionType != "" && !seen[entry.TransactionType] {
			seen[entry.TransactionType] = true
			codes = append(codes, entry.TransactionType)
		}
	}
	if len(codes) == 0 {
		return
	}

	types, err := s.txTypeRepo.FindTransactionTypesByCodes(ctx, codes)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve transaction type names", slog.String("error", err.Error()))
		return
	}
	for _, entry := range entries {
		if t, ok := types[entry.TransactionType]; ok {
			entry.TransactionTypeName = t.Name
		}
	}
}

func (s *journalService) ReconcileLookupIndex(ctx context.Context, from, to time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if to.Before(from) {
		return 0, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
	}

	repaired, err := s.journalRepo.RepairLookupIndex(ctx, from, to)
	if err != nil {
		logger.Error("Lookup index reconciliation failed", slog.String("error", err.Error()))
		return 0, err
	}
	if repaired > 0 {
		logger.Warn("Lookup index rows repaired", slog.Int("count", repaired))
	}
	return repaired, nil
}
