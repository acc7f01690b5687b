package services_test

import (
	"context"
	"testing"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/core/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.service = services.NewAccountService(s.mockAccountRepo, s.mockLedgerRepo)
	s.ctx = context.Background()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_InheritsLedgerFamily() {
	ledger := &domain.Ledger{LedgerID: "7010", Type: domain.Expense, Name: "Office expenses"}
	req := dto.CreateAccountRequest{
		AccountID: "7010.010",
		LedgerID:  "7010",
		Name:      "Supplies",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7010").Return(ledger, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "7010.010").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == "7010.010" &&
			a.Type == domain.Expense &&
			a.State == domain.AccountOpen &&
			a.Balance.IsZero()
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.Equal(domain.Expense, account.Type)
	s.Equal(domain.AccountOpen, account.State)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownLedger() {
	req := dto.CreateAccountRequest{AccountID: "7010.010", LedgerID: "7010", Name: "Supplies"}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7010").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(s.ctx, req, "tester")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownReferenceAccount() {
	ledger := &domain.Ledger{LedgerID: "7010", Type: domain.Expense}
	req := dto.CreateAccountRequest{
		AccountID:          "7010.010",
		LedgerID:           "7010",
		Name:               "Supplies",
		ReferenceAccountID: "9999.999",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7010").Return(ledger, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "7010.010").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "9999.999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(s.ctx, req, "tester")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ResubmitIdenticalIsNoOp() {
	ledger := &domain.Ledger{LedgerID: "7010", Type: domain.Expense, Name: "Office expenses"}
	existing := &domain.Account{
		AccountID: "7010.010",
		Type:      domain.Expense,
		Name:      "Supplies",
		LedgerID:  "7010",
		Holders:   []string{"holder-1"},
		State:     domain.AccountOpen,
	}
	req := dto.CreateAccountRequest{
		AccountID: "7010.010",
		LedgerID:  "7010",
		Name:      "Supplies",
		Holders:   []string{"holder-1"},
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7010").Return(ledger, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "7010.010").Return(existing, nil).Once()

	account, err := s.service.CreateAccount(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.Equal(existing, account)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ResubmitMismatchIsConflict() {
	ledger := &domain.Ledger{LedgerID: "7010", Type: domain.Expense, Name: "Office expenses"}
	existing := &domain.Account{
		AccountID: "7010.010",
		Type:      domain.Expense,
		Name:      "Supplies",
		LedgerID:  "7010",
		State:     domain.AccountOpen,
	}
	req := dto.CreateAccountRequest{
		AccountID: "7010.010",
		LedgerID:  "7010",
		Name:      "Stationery",
	}

	s.mockLedgerRepo.On("FindLedgerByID", s.ctx, "7010").Return(ledger, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "7010.010").Return(existing, nil).Once()

	_, err := s.service.CreateAccount(s.ctx, req, "tester")

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestExecuteAccountCommand_TransitionMatrix() {
	cases := []struct {
		state   domain.AccountState
		action  domain.CommandAction
		next    domain.AccountState
		allowed bool
	}{
		{domain.AccountOpen, domain.ActionLock, domain.AccountLocked, true},
		{domain.AccountOpen, domain.ActionClose, domain.AccountClosed, true},
		{domain.AccountOpen, domain.ActionUnlock, "", false},
		{domain.AccountOpen, domain.ActionReopen, "", false},
		{domain.AccountLocked, domain.ActionUnlock, domain.AccountOpen, true},
		{domain.AccountLocked, domain.ActionClose, domain.AccountClosed, true},
		{domain.AccountLocked, domain.ActionLock, "", false},
		{domain.AccountLocked, domain.ActionReopen, "", false},
		{domain.AccountClosed, domain.ActionReopen, domain.AccountOpen, true},
		{domain.AccountClosed, domain.ActionLock, "", false},
		{domain.AccountClosed, domain.ActionUnlock, "", false},
		{domain.AccountClosed, domain.ActionClose, "", false},
	}

	for _, tc := range cases {
		s.SetupTest()
		account := &domain.Account{AccountID: "1110.010", State: tc.state}
		s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(account, nil).Once()
		if tc.allowed {
			s.mockAccountRepo.On("UpdateAccountState", s.ctx, "1110.010", tc.state, tc.next, mock.MatchedBy(func(c domain.AccountCommand) bool {
				return c.Action == tc.action && c.AccountID == "1110.010" && c.CommandID != ""
			})).Return(nil).Once()
		}

		got, err := s.service.ExecuteAccountCommand(s.ctx, "1110.010", tc.action, "", "tester")

		if tc.allowed {
			s.Require().NoError(err, "%s from %s", tc.action, tc.state)
			s.Equal(tc.next, got.State)
		} else {
			s.ErrorIs(err, apperrors.ErrIllegalTransition, "%s from %s", tc.action, tc.state)
			s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateAccountState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	}
}

func (s *AccountServiceTestSuite) TestExecuteAccountCommand_LosesToConcurrentCommand() {
	account := &domain.Account{AccountID: "1110.010", State: domain.AccountOpen}

	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(account, nil).Once()
	// Another command moved the account off OPEN between the read and the
	// guarded update; the repository reports the lost race.
	s.mockAccountRepo.On("UpdateAccountState", s.ctx, "1110.010", domain.AccountOpen, domain.AccountLocked, mock.Anything).
		Return(apperrors.ErrIllegalTransition).Once()

	_, err := s.service.ExecuteAccountCommand(s.ctx, "1110.010", domain.ActionLock, "", "tester")

	s.ErrorIs(err, apperrors.ErrIllegalTransition)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_BlockedByEntries() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(&domain.Account{AccountID: "1110.010"}, nil).Once()
	s.mockAccountRepo.On("CountEntriesByAccount", s.ctx, "1110.010").Return(int64(5), nil).Once()

	err := s.service.DeleteAccount(s.ctx, "1110.010")

	s.ErrorIs(err, apperrors.ErrReferenceExists)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_BlockedByReferencingAccounts() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(&domain.Account{AccountID: "1110.010"}, nil).Once()
	s.mockAccountRepo.On("CountEntriesByAccount", s.ctx, "1110.010").Return(int64(0), nil).Once()
	s.mockAccountRepo.On("CountReferencingAccounts", s.ctx, "1110.010").Return(int64(1), nil).Once()

	err := s.service.DeleteAccount(s.ctx, "1110.010")

	s.ErrorIs(err, apperrors.ErrReferenceExists)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_Success() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(&domain.Account{AccountID: "1110.010"}, nil).Once()
	s.mockAccountRepo.On("CountEntriesByAccount", s.ctx, "1110.010").Return(int64(0), nil).Once()
	s.mockAccountRepo.On("CountReferencingAccounts", s.ctx, "1110.010").Return(int64(0), nil).Once()
	s.mockAccountRepo.On("DeleteAccount", s.ctx, "1110.010").Return(nil).Once()

	err := s.service.DeleteAccount(s.ctx, "1110.010")

	s.NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestModifyAccount_RejectsSelfReference() {
	account := &domain.Account{AccountID: "1110.010", Name: "Cash"}
	self := "1110.010"

	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110.010").Return(account, nil).Once()

	_, err := s.service.ModifyAccount(s.ctx, "1110.010", dto.ModifyAccountRequest{ReferenceAccountID: &self}, "tester")

	s.ErrorIs(err, apperrors.ErrValidation)
}
