package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the chart-of-accounts hierarchy.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	runner        *commandRunner
}

// registerLedgerRoutes registers routes related to ledgers.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, runner *commandRunner) {
	h := &ledgerHandler{ledgerService: ledgerService, runner: runner}

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:id", h.getLedger)
		ledgers.PUT("/:id", h.updateLedger)
		ledgers.DELETE("/:id", h.deleteLedger)
		ledgers.POST("/:id/sub-ledgers", h.createSubLedger)
		ledgers.GET("/:id/sub-ledgers", h.listSubLedgers)
	}
}

// pageFromQuery reads pagination params the same way on every listing route.
func pageFromQuery(c *gin.Context) pagination.Page {
	pageIndex, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return pagination.Page{
		PageIndex:     pageIndex,
		Size:          size,
		SortColumn:    c.Query("sortBy"),
		SortDirection: pagination.SortDirection(c.Query("sortDirection")),
	}
}

// respondServiceError maps the error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrIllegalTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrReferenceExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// createLedger godoc
// @Summary Create a root ledger
// @Description Accepts a command to create a new root ledger
// @Tags ledgers
// @Accept json
// @Produce json
// @Param ledger body dto.CreateLedgerRequest true "Ledger details"
// @Param wait query bool false "Wait for the completion event"
// @Success 202 {object} CommandAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPostLedger, req.LedgerID, func(ctx context.Context) error {
		_, err := h.ledgerService.CreateLedger(ctx, req, userID)
		return err
	})
}

// createSubLedger godoc
// @Summary Create a sub-ledger
// @Description Accepts a command to attach a sub-ledger under an existing parent
// @Tags ledgers
// @Accept json
// @Produce json
// @Param id path string true "Parent ledger ID"
// @Param ledger body dto.CreateLedgerRequest true "Sub-ledger details"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /ledgers/{id}/sub-ledgers [post]
func (h *ledgerHandler) createSubLedger(c *gin.Context) {
	parentID := c.Param("id")
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPostSubLedger, req.LedgerID, func(ctx context.Context) error {
		_, err := h.ledgerService.AddSubLedger(ctx, parentID, req, userID)
		return err
	})
}

// getLedger godoc
// @Summary Get a ledger
// @Description Retrieves a ledger together with its derived total value
// @Tags ledgers
// @Produce json
// @Param id path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Security BearerAuth
// @Router /ledgers/{id} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// listLedgers godoc
// @Summary List ledgers
// @Description Retrieves a page of ledgers, optionally filtered by a search term
// @Tags ledgers
// @Produce json
// @Param term query string false "Search term for identifier or name"
// @Param page query int false "Page index"
// @Param size query int false "Page size"
// @Success 200 {object} dto.ListLedgersResponse
// @Security BearerAuth
// @Router /ledgers [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	page := pageFromQuery(c)
	ledgers, total, err := h.ledgerService.ListLedgers(c.Request.Context(), c.Query("term"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListLedgersResponse{
		Ledgers:    make([]dto.LedgerResponse, len(ledgers)),
		TotalCount: total,
		PageIndex:  page.Normalized().PageIndex,
		Size:       page.Normalized().Size,
	}
	for i := range ledgers {
		resp.Ledgers[i] = dto.ToLedgerResponse(&ledgers[i])
	}
	c.JSON(http.StatusOK, resp)
}

// listSubLedgers godoc
// @Summary List sub-ledgers
// @Description Retrieves the immediate sub-ledgers of a ledger
// @Tags ledgers
// @Produce json
// @Param id path string true "Ledger ID"
// @Success 200 {array} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Security BearerAuth
// @Router /ledgers/{id}/sub-ledgers [get]
func (h *ledgerHandler) listSubLedgers(c *gin.Context) {
	subLedgers, err := h.ledgerService.ListSubLedgers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.LedgerResponse, len(subLedgers))
	for i := range subLedgers {
		resp[i] = dto.ToLedgerResponse(&subLedgers[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateLedger godoc
// @Summary Update a ledger
// @Description Accepts a command to update a ledger's mutable fields
// @Tags ledgers
// @Accept json
// @Produce json
// @Param id path string true "Ledger ID"
// @Param ledger body dto.ModifyLedgerRequest true "Fields to update"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /ledgers/{id} [put]
func (h *ledgerHandler) updateLedger(c *gin.Context) {
	ledgerID := c.Param("id")
	var req dto.ModifyLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPutLedger, ledgerID, func(ctx context.Context) error {
		_, err := h.ledgerService.ModifyLedger(ctx, ledgerID, req, userID)
		return err
	})
}

// deleteLedger godoc
// @Summary Delete a ledger
// @Description Accepts a command to delete a ledger with no sub-ledgers and no accounts
// @Tags ledgers
// @Produce json
// @Param id path string true "Ledger ID"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /ledgers/{id} [delete]
func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	ledgerID := c.Param("id")

	h.runner.submit(c, domain.EventDeleteLedger, ledgerID, func(ctx context.Context) error {
		return h.ledgerService.DeleteLedger(ctx, ledgerID)
	})
}
