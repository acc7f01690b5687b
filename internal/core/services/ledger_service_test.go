package services_test

import (
	"context"
	"testing"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/core/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewLedgerService(s.mockLedgerRepo, s.mockAccountRepo)
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestCreateLedger_Success() {
	req := dto.CreateLedgerRequest{
		LedgerID: "7000",
		Type:     "REVENUE",
		Name:     "Operating revenue",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7000").Return(nil, apperrors.ErrNotFound).Once()
	s.mockLedgerRepo.On("SaveLedger", s.ctx, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.LedgerID == "7000" && l.Type == domain.Revenue && l.ParentLedgerID == ""
	})).Return(nil).Once()

	ledger, err := s.service.CreateLedger(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.Equal("7000", ledger.LedgerID)
	s.Equal(domain.Revenue, ledger.Type)
	s.Equal("tester", ledger.CreatedBy)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateLedger_IdenticalResubmitIsNoOp() {
	existing := &domain.Ledger{
		LedgerID: "7000",
		Type:     domain.Revenue,
		Name:     "Operating revenue",
	}
	req := dto.CreateLedgerRequest{
		LedgerID: "7000",
		Type:     "REVENUE",
		Name:     "Operating revenue",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7000").Return(existing, nil).Once()

	ledger, err := s.service.CreateLedger(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.Equal(existing, ledger)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateLedger_MismatchedResubmitIsConflict() {
	existing := &domain.Ledger{
		LedgerID: "7000",
		Type:     domain.Revenue,
		Name:     "Operating revenue",
	}
	req := dto.CreateLedgerRequest{
		LedgerID: "7000",
		Type:     "REVENUE",
		Name:     "Different name",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7000").Return(existing, nil).Once()

	_, err := s.service.CreateLedger(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *LedgerServiceTestSuite) TestCreateLedger_RejectsBadIdentifier() {
	for _, id := range []string{"", "has space", "slash/inside", "waytoolongidentifier-0123456789012345"} {
		req := dto.CreateLedgerRequest{LedgerID: id, Type: "ASSET", Name: "n"}
		_, err := s.service.CreateLedger(s.ctx, req, "tester")
		s.ErrorIs(err, apperrors.ErrValidation, "identifier %q should be rejected", id)
	}
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateLedger_RejectsUnknownType() {
	req := dto.CreateLedgerRequest{LedgerID: "9000", Type: "GOODWILL", Name: "n"}
	_, err := s.service.CreateLedger(s.ctx, req, "tester")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestAddSubLedger_InheritsParentFamily() {
	parent := &domain.Ledger{LedgerID: "1000", Type: domain.Asset, Name: "Assets"}
	req := dto.CreateLedgerRequest{LedgerID: "1100", Name: "Cash"}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(parent, nil).Once()
	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1100").Return(nil, apperrors.ErrNotFound).Once()
	s.mockLedgerRepo.On("SaveLedger", s.ctx, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.Type == domain.Asset && l.ParentLedgerID == "1000"
	})).Return(nil).Once()

	sub, err := s.service.AddSubLedger(s.ctx, "1000", req, "tester")

	s.Require().NoError(err)
	s.Equal(domain.Asset, sub.Type)
	s.Equal("1000", sub.ParentLedgerID)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestAddSubLedger_RejectsConflictingType() {
	parent := &domain.Ledger{LedgerID: "1000", Type: domain.Asset, Name: "Assets"}
	req := dto.CreateLedgerRequest{LedgerID: "1100", Type: "EXPENSE", Name: "Cash"}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(parent, nil).Once()

	_, err := s.service.AddSubLedger(s.ctx, "1000", req, "tester")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestGetLedger_IncludesTotalValue() {
	ledger := &domain.Ledger{LedgerID: "1000", Type: domain.Asset, Name: "Assets"}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(ledger, nil).Once()
	s.mockLedgerRepo.On("TotalValue", s.ctx, "1000").Return(decimal.RequireFromString("150.00"), nil).Once()

	got, err := s.service.GetLedger(s.ctx, "1000")

	s.Require().NoError(err)
	s.True(got.TotalValue.Equal(decimal.RequireFromString("150.00")))
}

func (s *LedgerServiceTestSuite) TestDeleteLedger_BlockedBySubLedgers() {
	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(&domain.Ledger{LedgerID: "1000"}, nil).Once()
	s.mockLedgerRepo.On("CountChildLedgers", s.ctx, "1000").Return(int64(2), nil).Once()

	err := s.service.DeleteLedger(s.ctx, "1000")

	s.ErrorIs(err, apperrors.ErrReferenceExists)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "DeleteLedger", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestDeleteLedger_BlockedByAccounts() {
	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(&domain.Ledger{LedgerID: "1000"}, nil).Once()
	s.mockLedgerRepo.On("CountChildLedgers", s.ctx, "1000").Return(int64(0), nil).Once()
	s.mockAccountRepo.On("CountAccountsByLedger", s.ctx, "1000").Return(int64(3), nil).Once()

	err := s.service.DeleteLedger(s.ctx, "1000")

	s.ErrorIs(err, apperrors.ErrReferenceExists)
}

func (s *LedgerServiceTestSuite) TestDeleteLedger_Success() {
	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(&domain.Ledger{LedgerID: "1000"}, nil).Once()
	s.mockLedgerRepo.On("CountChildLedgers", s.ctx, "1000").Return(int64(0), nil).Once()
	s.mockAccountRepo.On("CountAccountsByLedger", s.ctx, "1000").Return(int64(0), nil).Once()
	s.mockLedgerRepo.On("DeleteLedger", s.ctx, "1000").Return(nil).Once()

	err := s.service.DeleteLedger(s.ctx, "1000")

	s.NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestModifyLedger_UpdatesMutableFieldsOnly() {
	existing := &domain.Ledger{LedgerID: "1000", Type: domain.Asset, Name: "Assets", Description: "old"}
	name := "Fixed assets"

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "1000").Return(existing, nil).Once()
	s.mockLedgerRepo.On("UpdateLedger", s.ctx, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.Name == "Fixed assets" && l.Description == "old" && l.Type == domain.Asset
	})).Return(nil).Once()

	got, err := s.service.ModifyLedger(s.ctx, "1000", dto.ModifyLedgerRequest{Name: &name}, "tester")

	s.Require().NoError(err)
	s.Equal("Fixed assets", got.Name)
	s.Equal("tester", got.LastUpdatedBy)
}

func (s *LedgerServiceTestSuite) TestGetChartOfAccounts_DepthFirstWithMergedChildren() {
	roots := []domain.Ledger{
		{LedgerID: "1000", Type: domain.Asset, Name: "Assets", ShowAccountsInChart: true},
	}
	subLedgers := []domain.Ledger{
		{LedgerID: "1000.200", Type: domain.Asset, Name: "Receivables"},
	}
	accounts := []domain.Account{
		{AccountID: "1000.100", Name: "Cash account"},
		{AccountID: "1000.300", Name: "Inventory account"},
	}

	s.mockLedgerRepo.On("ListRootLedgers", s.ctx).Return(roots, nil).Once()
	s.mockLedgerRepo.On("ListChildLedgers", s.ctx, "1000").Return(subLedgers, nil).Once()
	s.mockLedgerRepo.On("ListChildLedgers", s.ctx, "1000.200").Return([]domain.Ledger{}, nil).Once()
	s.mockAccountRepo.On("ListAccountsByLedger", s.ctx, "1000").Return(accounts, nil).Once()

	entries, err := s.service.GetChartOfAccounts(s.ctx)

	s.Require().NoError(err)
	// Accounts and sub-ledgers of one parent are merged and sorted by identifier.
	ids := make([]string, len(entries))
	levels := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.Identifier
		levels[i] = e.Level
	}
	assert.Equal(s.T(), []string{"1000", "1000.100", "1000.200", "1000.300"}, ids)
	assert.Equal(s.T(), []int{0, 1, 1, 1}, levels)
}

func (s *LedgerServiceTestSuite) TestGetChartOfAccounts_HidesAccountsWhenFlagOff() {
	roots := []domain.Ledger{
		{LedgerID: "2000", Type: domain.Liability, Name: "Liabilities", ShowAccountsInChart: false},
	}

	s.mockLedgerRepo.On("ListRootLedgers", s.ctx).Return(roots, nil).Once()
	s.mockLedgerRepo.On("ListChildLedgers", s.ctx, "2000").Return([]domain.Ledger{}, nil).Once()

	entries, err := s.service.GetChartOfAccounts(s.ctx)

	s.Require().NoError(err)
	s.Len(entries, 1)
	s.mockAccountRepo.AssertNotCalled(s.T(), "ListAccountsByLedger", mock.Anything, mock.Anything)
}
