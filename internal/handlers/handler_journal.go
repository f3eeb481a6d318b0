package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corefin/corefin/internal/core/domain"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/dto"
	"github.com/corefin/corefin/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests for journal entries and their
// lifecycle transitions.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
}

func newJournalEntryHandler(es portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{entryService: es}
}

// registerJournalEntryRoutes registers company-scoped journal entry routes.
func registerJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(entryService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)

		// Lifecycle transitions
		entries.POST("/:entryID/submit", h.submitEntry)
		entries.POST("/:entryID/approve", h.approveEntry)
		entries.POST("/:entryID/reject", h.rejectEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a new balanced-or-not draft entry with at least two lines
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), companyID, c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a token-paginated list of the company's entries
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   status query []string false "Filter by status" collectionFormat(multi)
// @Param   limit query int false "Limit number of results" default(50)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), companyID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Replaces a draft entry's header and lines; only drafts are editable
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Replacement details"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not an editable draft"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID} [put]
func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.UpdateDraftEntry(c.Request.Context(), companyID, c.Param("entryID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a draft entry and its lines; only drafts are deletable
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a deletable draft"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID} [delete]
func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entryID := c.Param("entryID")
	if err := h.entryService.DeleteDraftEntry(c.Request.Context(), companyID, entryID, userID); err != nil {
		respondServiceError(c, err, "Failed to delete journal entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// submitEntry godoc
// @Summary Submit a draft for approval
// @Description Moves a draft entry to pending approval
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in a submittable status"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID}/submit [post]
func (h *journalEntryHandler) submitEntry(c *gin.Context) {
	h.transition(c, h.entryService.SubmitEntry, "Failed to submit journal entry")
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Description Approves an entry awaiting approval
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not pending approval"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID}/approve [post]
func (h *journalEntryHandler) approveEntry(c *gin.Context) {
	h.transition(c, h.entryService.ApproveEntry, "Failed to approve journal entry")
}

// rejectEntry godoc
// @Summary Reject a pending entry
// @Description Returns an entry awaiting approval to draft
// @Tags journal-entries
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not pending approval"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID}/reject [post]
func (h *journalEntryHandler) rejectEntry(c *gin.Context) {
	h.transition(c, h.entryService.RejectEntry, "Failed to reject journal entry")
}

// transition runs one of the status transitions that share a signature.
func (h *journalEntryHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error),
	fallbackMsg string,
) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entryID := c.Param("entryID")
	entry, err := fn(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		respondServiceError(c, err, fallbackMsg)
		return
	}

	logger.Info("Journal entry transitioned", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post an approved entry
// @Description Posts an approved entry to the ledger after a final balance check
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Param   posting body dto.PostEntryRequest false "Optional posting date override"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Entry does not balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not approved"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID}/post [post]
func (h *journalEntryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	// The body is optional; an empty body means post as of today.
	var req dto.PostEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	entryID := c.Param("entryID")
	entry, err := h.entryService.PostEntry(c.Request.Context(), companyID, entryID, req.PostingDate, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts the mirror-image reversing entry and marks the original reversed
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest false "Optional reversal date"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not reversible or already reversed"
// @Security BearerAuth
// @Router /companies/{companyID}/journal-entries/{entryID}/reverse [post]
func (h *journalEntryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ReverseEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	entryID := c.Param("entryID")
	reversal, err := h.entryService.ReverseEntry(c.Request.Context(), companyID, entryID, req.ReversalDate, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
