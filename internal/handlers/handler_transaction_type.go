package handlers

import (
	"context"
	"net/http"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionTypeHandler handles HTTP requests for the transaction type registry.
type transactionTypeHandler struct {
	txTypeService portssvc.TransactionTypeSvcFacade
	runner        *commandRunner
}

// registerTransactionTypeRoutes registers routes related to transaction types.
func registerTransactionTypeRoutes(rg *gin.RouterGroup, txTypeService portssvc.TransactionTypeSvcFacade, runner *commandRunner) {
	h := &transactionTypeHandler{txTypeService: txTypeService, runner: runner}

	types := rg.Group("/transaction-types")
	{
		types.POST("", h.createType)
		types.GET("", h.listTypes)
		types.GET("/:code", h.getType)
		types.PUT("/:code", h.updateType)
	}
}

// createType godoc
// @Summary Register a transaction type
// @Tags transaction-types
// @Accept json
// @Produce json
// @Param type body dto.CreateTransactionTypeRequest true "Transaction type"
// @Success 202 {object} CommandAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /transaction-types [post]
func (h *transactionTypeHandler) createType(c *gin.Context) {
	var req dto.CreateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPostTxType, req.Code, func(ctx context.Context) error {
		_, err := h.txTypeService.CreateTransactionType(ctx, req, userID)
		return err
	})
}

// updateType godoc
// @Summary Update a transaction type
// @Tags transaction-types
// @Accept json
// @Produce json
// @Param code path string true "Transaction type code"
// @Param type body dto.ModifyTransactionTypeRequest true "Fields to update"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /transaction-types/{code} [put]
func (h *transactionTypeHandler) updateType(c *gin.Context) {
	code := c.Param("code")
	var req dto.ModifyTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPutTxType, code, func(ctx context.Context) error {
		_, err := h.txTypeService.ModifyTransactionType(ctx, code, req, userID)
		return err
	})
}

// getType godoc
// @Summary Get a transaction type
// @Tags transaction-types
// @Produce json
// @Param code path string true "Transaction type code"
// @Success 200 {object} dto.TransactionTypeResponse
// @Failure 404 {object} map[string]string "Transaction type not found"
// @Security BearerAuth
// @Router /transaction-types/{code} [get]
func (h *transactionTypeHandler) getType(c *gin.Context) {
	txType, err := h.txTypeService.GetTransactionType(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionTypeResponse(txType))
}

// listTypes godoc
// @Summary List transaction types
// @Tags transaction-types
// @Produce json
// @Param term query string false "Search term for code or name"
// @Success 200 {object} dto.ListTransactionTypesResponse
// @Security BearerAuth
// @Router /transaction-types [get]
func (h *transactionTypeHandler) listTypes(c *gin.Context) {
	page := pageFromQuery(c)
	types, total, err := h.txTypeService.ListTransactionTypes(c.Request.Context(), c.Query("term"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListTransactionTypesResponse{
		TransactionTypes: make([]dto.TransactionTypeResponse, len(types)),
		TotalCount:       total,
		PageIndex:        page.Normalized().PageIndex,
		Size:             page.Normalized().Size,
	}
	for i := range types {
		resp.TransactionTypes[i] = dto.ToTransactionTypeResponse(&types[i])
	}
	c.JSON(http.StatusOK, resp)
}
