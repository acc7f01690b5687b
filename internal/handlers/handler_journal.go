package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
	"github.com/fincore/bookkeeper_svc/internal/dto"
	"github.com/fincore/bookkeeper_svc/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	runner         *commandRunner
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, runner *commandRunner) {
	h := &journalHandler{journalService: journalService, runner: runner}

	journal := rg.Group("/journal-entries")
	{
		journal.POST("", h.createEntry)
		journal.GET("", h.listEntries)
		journal.GET("/:id", h.getEntry)
		journal.POST("/:id/release", h.releaseEntry)
	}

	// Operator surface for the non-atomic lookup index dual write.
	rg.POST("/reconciliation/journal-lookup", h.reconcileLookup)
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Accepts a command to post a balanced journal entry in PENDING state
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Param wait query bool false "Wait for the completion event"
// @Success 202 {object} CommandAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventPostJournalEntry, req.TransactionID, func(ctx context.Context) error {
		_, err := h.journalService.CreateJournalEntry(ctx, req, userID)
		return err
	})
}

// releaseEntry godoc
// @Summary Release a journal entry
// @Description Accepts a command to apply a PENDING entry's legs to account balances
// @Tags journal
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param release body dto.ReleaseJournalEntryRequest false "Release comment"
// @Success 202 {object} CommandAcceptedResponse
// @Security BearerAuth
// @Router /journal-entries/{id}/release [post]
func (h *journalHandler) releaseEntry(c *gin.Context) {
	transactionID := c.Param("id")
	// Body is optional; an empty body means release without a comment.
	var req dto.ReleaseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c.Request.Context())

	h.runner.submit(c, domain.EventReleaseJournalEntry, transactionID, func(ctx context.Context) error {
		return h.journalService.ReleaseJournalEntry(ctx, transactionID, req.Comment, userID)
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry by its transaction identifier
// @Tags journal
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Scans the date buckets in the given range with optional account and amount filters
// @Tags journal
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param accountID query string false "Only entries touching this account"
// @Param amount query string false "Only entries with this exact total"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid range or filters"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
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

	params := dto.ListJournalEntriesParams{
		From:      from,
		To:        to,
		AccountID: c.Query("accountID"),
	}
	if raw := c.Query("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount filter"})
			return
		}
		params.Amount = &amount
	}

	page := pageFromQuery(c)
	entries, total, err := h.journalService.ListJournalEntries(c.Request.Context(), params, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ListJournalEntriesResponse{
		Entries:    make([]dto.JournalEntryResponse, len(entries)),
		TotalCount: total,
		PageIndex:  page.Normalized().PageIndex,
		Size:       page.Normalized().Size,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// reconcileLookup godoc
// @Summary Reconcile the journal lookup index
// @Description Re-inserts lookup rows missing after failed dual writes in the given range
// @Tags journal
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /reconciliation/journal-lookup [post]
func (h *journalHandler) reconcileLookup(c *gin.Context) {
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

	repaired, err := h.journalService.ReconcileLookupIndex(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired": repaired})
}
