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
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
)

// transactionTypeService maintains the transaction type registry.
type transactionTypeService struct {
	txTypeRepo portsrepo.TransactionTypeRepositoryFacade
}

// NewTransactionTypeService creates the transaction type service.
func NewTransactionTypeService(txTypeRepo portsrepo.TransactionTypeRepositoryFacade) portssvc.TransactionTypeSvcFacade {
	return &transactionTypeService{txTypeRepo: txTypeRepo}
}

var _ portssvc.TransactionTypeSvcFacade = (*transactionTypeService)(nil)

func (s *transactionTypeService) CreateTransactionType(ctx context.Context, req dto.CreateTransactionTypeRequest, creator string) (*domain.TransactionType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txTypeRepo.FindTransactionTypeByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: transaction type %s already exists", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now()
	txType := domain.TransactionType{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.txTypeRepo.SaveTransactionType(ctx, txType); err != nil {
		logger.Error("Failed to save transaction type", slog.String("error", err.Error()), slog.String("code", txType.Code))
		return nil, err
	}
	logger.Info("Transaction type created", slog.String("code", txType.Code))
	return &txType, nil
}

func (s *transactionTypeService) ModifyTransactionType(ctx context.Context, code string, req dto.ModifyTransactionTypeRequest, updater string) (*domain.TransactionType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txType, err := s.txTypeRepo.FindTransactionTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != txType.Name {
		txType.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != txType.Description {
		txType.Description = *req.Description
		changed = true
	}
	if !changed {
		return txType, nil
	}

	txType.LastUpdatedAt = time.Now()
	txType.LastUpdatedBy = updater

	if err := s.txTypeRepo.UpdateTransactionType(ctx, *txType); err != nil {
		logger.Error("Failed to update transaction type", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}
	return txType, nil
}

func (s *transactionTypeService) GetTransactionType(ctx context.Context, code string) (*domain.TransactionType, error) {
	return s.txTypeRepo.FindTransactionTypeByCode(ctx, code)
}

func (s *transactionTypeService) ListTransactionTypes(ctx context.Context, term string, page pagination.Page) ([]domain.TransactionType, int64, error) {
	return s.txTypeRepo.ListTransactionTypes(ctx, term, page)
}
