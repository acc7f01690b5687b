package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commandEvents maps account state-machine actions to their event names.
var commandEvents = map[domain.CommandAction]string{
	domain.ActionLock:   domain.EventLockAccount,
	domain.ActionUnlock: domain.EventUnlockAccount,
	domain.ActionClose:  domain.EventCloseAccount,
	domain.ActionReopen: domain.EventReopenAccount,
}

// accountHandler handles HTTP requests for accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	runner         *commandRunner
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, runner *commandRunner) {
	h := &accountHandler{accountService: accountService, runner: runner}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.POST("/:id/commands", h.executeCommand)
		accounts.GET("/:id/commands", h.listCommands)
		accounts.GET("/:id/entries", h.listEntries)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Accepts a command to create an account under an existing ledger
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Param wait query bool false "Wait for the completion event"
// @Success 202 {object} CommandAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPostAccount, req.AccountID, func(ctx context.Context) error {
		_, err := h.accountService.CreateAccount(ctx, req, userID)
		return err
	})
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a filtered page of accounts
// @Tags accounts
// @Produce json
// @Param term query string false "Search term for identifier or name"
// @Param type query string false "Account family filter"
// @Param state query string false "Account state filter"
// @Param ledgerID query string false "Owning ledger filter"
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	page := pageFromQuery(c)
	filter := portsrepo.AccountFilter{
		Term:     c.Query("term"),
		Type:     domain.LedgerType(c.Query("type")),
		State:    domain.AccountState(c.Query("state")),
		LedgerID: c.Query("ledgerID"),
	}

	accounts, total, err := h.accountService.ListAccounts(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListAccountsResponse{
		Accounts:   make([]dto.AccountResponse, len(accounts)),
		TotalCount: total,
		PageIndex:  page.Normalized().PageIndex,
		Size:       page.Normalized().Size,
	}
	for i := range accounts {
		resp.Accounts[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateAccount godoc
// @Summary Update an account
// @Description Accepts a command to update an account's mutable fields
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.ModifyAccountRequest true "Fields to update"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	accountID := c.Param("id")
	var req dto.ModifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPutAccount, accountID, func(ctx context.Context) error {
		_, err := h.accountService.ModifyAccount(ctx, accountID, req, userID)
		return err
	})
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Accepts a command to delete an account with no entries and no inbound references
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("id")

	h.runner.submit(c, domain.EventDeleteAccount, accountID, func(ctx context.Context) error {
		return h.accountService.DeleteAccount(ctx, accountID)
	})
}

// executeCommand godoc
// @Summary Execute an account state command
// @Description Accepts a LOCK, UNLOCK, CLOSE or REOPEN command for an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param command body dto.AccountCommandRequest true "Command"
// @Success 202 {object} CommandAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /accounts/{id}/commands [post]
func (h *accountHandler) executeCommand(c *gin.Context) {
	accountID := c.Param("id")
	var req dto.AccountCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	action := domain.CommandAction(req.Action)
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, commandEvents[action], accountID, func(ctx context.Context) error {
		_, err := h.accountService.ExecuteAccountCommand(ctx, accountID, action, req.Comment, userID)
		return err
	})
}

// listCommands godoc
// @Summary List account commands
// @Description Retrieves the executed state-machine commands for an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} dto.AccountCommandResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/commands [get]
func (h *accountHandler) listCommands(c *gin.Context) {
	commands, err := h.accountService.ListAccountCommands(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.AccountCommandResponse, len(commands))
	for i, cmd := range commands {
		resp[i] = dto.ToAccountCommandResponse(cmd)
	}
	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List account entries
// @Description Retrieves the recorded journal legs for an account within a date range
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param from query string true "Range start (RFC 3339 date)"
// @Param to query string true "Range end (RFC 3339 date)"
// @Success 200 {object} dto.ListAccountEntriesResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Security BearerAuth
// @Router /accounts/{id}/entries [get]
func (h *accountHandler) listEntries(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	page := pageFromQuery(c)
	entries, total, err := h.accountService.ListAccountEntries(c.Request.Context(), c.Param("id"), from, to, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListAccountEntriesResponse{
		Entries:    make([]dto.AccountEntryResponse, len(entries)),
		TotalCount: total,
		PageIndex:  page.Normalized().PageIndex,
		Size:       page.Normalized().Size,
	}
	for i, entry := range entries {
		resp.Entries[i] = dto.ToAccountEntryResponse(entry)
	}
	c.JSON(http.StatusOK, resp)
}
