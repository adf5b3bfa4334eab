package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// journalHandler handles HTTP requests for standalone ledger postings.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal-entries")
	{
		journal.POST("", h.recordEvent)
		journal.GET("", h.getEntriesByReference)
	}
}

func (h *journalHandler) recordEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	built, err := h.journalService.RecordEvent(
		c.Request.Context(),
		req.EventName,
		req.FiscalPeriodID,
		req.ReferenceType,
		req.ReferenceID,
		domain.NewMoney(req.Amount, req.CurrencyCode),
		req.EntryDate,
		userID,
	)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTemplateNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnbalancedEntry):
			logger.Error("Unbalanced entry from template", slog.String("event", req.EventName), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		default:
			logger.Error("Failed to record event", slog.String("event", req.EventName), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		}
		return
	}

	logger.Info("Business event recorded",
		slog.String("event", req.EventName),
		slog.String("journal_id", built.Entry.JournalID),
	)
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(built.Entry, built.Lines))
}

func (h *journalHandler) getEntriesByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	referenceType := c.Query("referenceType")
	referenceID := c.Query("referenceID")
	if referenceType == "" || referenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenceType and referenceID query parameters are required"})
		return
	}

	entries, linesByJournal, err := h.journalService.GetEntriesByReference(c.Request.Context(), referenceType, referenceID)
	if err != nil {
		logger.Error("Failed to get journal entries", slog.String("reference_id", referenceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entries"})
		return
	}

	resp := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.ToJournalEntryResponse(entry, linesByJournal[entry.JournalID]))
	}
	c.JSON(http.StatusOK, resp)
}
