package handlers

import (
	"net/http"

	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves derived financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	ledgerService    portssvc.LedgerSvcFacade
}

// registerReportingRoutes registers the statement routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &reportingHandler{reportingService: reportingService, ledgerService: ledgerService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/financial-condition", h.financialCondition)
		reports.GET("/chart-of-accounts", h.chartOfAccounts)
	}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Classifies ledgers into debit and credit columns; totals must be equal
// @Tags reports
// @Produce json
// @Param subLedgers query bool false "Report immediate sub-ledgers instead of roots"
// @Param suppressZero query bool false "Omit ledgers with a zero total"
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	subLedgers := c.Query("subLedgers") == "true"
	suppressZero := c.Query("suppressZero") == "true"

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), subLedgers, suppressZero)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// incomeStatement godoc
// @Summary Income statement
// @Description Reports revenue against expenses from released postings
// @Tags reports
// @Produce json
// @Success 200 {object} dto.IncomeStatementResponse
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	stmt, err := h.reportingService.IncomeStatement(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(stmt))
}

// financialCondition godoc
// @Summary Statement of financial condition
// @Description Reports assets against equities and liabilities including current earnings
// @Tags reports
// @Produce json
// @Success 200 {object} dto.FinancialConditionResponse
// @Security BearerAuth
// @Router /reports/financial-condition [get]
func (h *reportingHandler) financialCondition(c *gin.Context) {
	fc, err := h.reportingService.FinancialCondition(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialConditionResponse(fc))
}

// chartOfAccounts godoc
// @Summary Chart of accounts
// @Description Depth-first view of the ledger hierarchy with level counters
// @Tags reports
// @Produce json
// @Success 200 {array} dto.ChartOfAccountsEntryResponse
// @Security BearerAuth
// @Router /reports/chart-of-accounts [get]
func (h *reportingHandler) chartOfAccounts(c *gin.Context) {
	entries, err := h.ledgerService.GetChartOfAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChartOfAccountsResponse(entries))
}
