package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/events/memory"
	"github.com/fincore/bookkeeper_svc/internal/handlers"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/platform/config"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/fincore/bookkeeper_svc/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error) {
	args := m.Called(ctx, req, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}
func (m *MockLedgerService) AddSubLedger(ctx context.Context, parentLedgerID string, req dto.CreateLedgerRequest, creator string) (*domain.Ledger, error) {
	args := m.Called(ctx, parentLedgerID, req, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}
func (m *MockLedgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}
func (m *MockLedgerService) ListLedgers(ctx context.Context, term string, page pagination.Page) ([]domain.Ledger, int64, error) {
	args := m.Called(ctx, term, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Ledger), args.Get(1).(int64), args.Error(2)
}
func (m *MockLedgerService) ListSubLedgers(ctx context.Context, ledgerID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}
func (m *MockLedgerService) ModifyLedger(ctx context.Context, ledgerID string, req dto.ModifyLedgerRequest, updater string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID, req, updater)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}
func (m *MockLedgerService) DeleteLedger(ctx context.Context, ledgerID string) error {
	args := m.Called(ctx, ledgerID)
	return args.Error(0)
}
func (m *MockLedgerService) GetChartOfAccounts(ctx context.Context) ([]domain.ChartOfAccountsEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccountsEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	dispatcher        *worker.Dispatcher
	bus               *memory.Bus
	jwtSecret         string
}

func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := middleware.TenantClaims{
		Tenant: "acme",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bookkeeper-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedgerService = new(MockLedgerService)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.bus = memory.NewBus()
	suite.dispatcher = worker.NewDispatcher(2, 16, suite.bus, logger)

	// IsProduction skips the swagger routes, which the tests never hit.
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Ledger: suite.mockLedgerService}
	handlers.RegisterRoutes(suite.router, cfg, services, suite.dispatcher, suite.bus)
}

func (suite *LedgerHandlerTestSuite) TearDownTest() {
	suite.dispatcher.Stop()
	suite.bus.Close()
}

func (suite *LedgerHandlerTestSuite) doRequest(method, url string, body []byte, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestGetLedger_Success() {
	expected := &domain.Ledger{
		LedgerID:   "1000",
		Type:       domain.Asset,
		Name:       "Current assets",
		TotalValue: decimal.RequireFromString("350.00"),
	}
	suite.mockLedgerService.On("GetLedger", mock.Anything, "1000").Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/ledgers/1000", nil, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1000", resp.LedgerID)
	suite.Equal("ASSET", resp.Type)
	suite.True(resp.TotalValue.Equal(decimal.RequireFromString("350.00")))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetLedger_NotFound() {
	suite.mockLedgerService.On("GetLedger", mock.Anything, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/ledgers/9999", nil, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetLedger_MissingToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/ledgers/1000", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetLedger")
}

func (suite *LedgerHandlerTestSuite) TestCreateLedger_Accepted() {
	req := dto.CreateLedgerRequest{LedgerID: "1000", Type: "ASSET", Name: "Current assets"}
	created := make(chan struct{})
	suite.mockLedgerService.On("CreateLedger", mock.Anything, req, "clerk-1").
		Run(func(args mock.Arguments) { close(created) }).
		Return(&domain.Ledger{LedgerID: "1000"}, nil).Once()

	body, _ := json.Marshal(req)
	w := suite.doRequest(http.MethodPost, "/api/v1/ledgers", body, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusAccepted, w.Code)
	var resp handlers.CommandAcceptedResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1000", resp.ID)
	suite.Equal(domain.EventPostLedger, resp.Event)
	suite.Equal("ACCEPTED", resp.Status)

	// The command is applied by a worker after the response.
	select {
	case <-created:
	case <-time.After(2 * time.Second):
		suite.FailNow("worker never executed the command")
	}
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateLedger_WaitForCompletion() {
	req := dto.CreateLedgerRequest{LedgerID: "2000", Type: "LIABILITY", Name: "Current liabilities"}
	suite.mockLedgerService.On("CreateLedger", mock.Anything, req, "clerk-1").
		Return(&domain.Ledger{LedgerID: "2000"}, nil).Once()

	body, _ := json.Marshal(req)
	w := suite.doRequest(http.MethodPost, "/api/v1/ledgers?wait=true", body, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusOK, w.Code)
	var resp handlers.CommandAcceptedResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("COMPLETED", resp.Status)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateLedger_InvalidBody() {
	body := []byte(`{"type":"ASSET","name":"No identifier"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/ledgers", body, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateLedger")
}

func (suite *LedgerHandlerTestSuite) TestCreateLedger_RejectsBadIdentifier() {
	body := []byte(`{"ledgerID":"10 00!","type":"ASSET","name":"Spaces not allowed"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/ledgers", body, suite.generateTestToken("clerk-1"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateLedger")
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
