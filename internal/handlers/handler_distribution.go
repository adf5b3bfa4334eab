package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/core/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// distributionHandler handles HTTP requests for the distribution lifecycle.
type distributionHandler struct {
	distributionService portssvc.DistributionSvcFacade
	journalService      portssvc.JournalSvcFacade
	transferService     portssvc.TransferSvcFacade
}

func newDistributionHandler(ds portssvc.DistributionSvcFacade, js portssvc.JournalSvcFacade, ts portssvc.TransferSvcFacade) *distributionHandler {
	return &distributionHandler{
		distributionService: ds,
		journalService:      js,
		transferService:     ts,
	}
}

// registerDistributionRoutes registers routes related to distributions.
func registerDistributionRoutes(rg *gin.RouterGroup, ds portssvc.DistributionSvcFacade, js portssvc.JournalSvcFacade, ts portssvc.TransferSvcFacade) {
	h := newDistributionHandler(ds, js, ts)

	distributions := rg.Group("/distributions")
	{
		distributions.POST("", h.createDraft)
		distributions.GET("/:id", h.getDistribution)
		distributions.POST("/:id/simulate", h.simulate)
		distributions.GET("/:id/simulation", h.getSimulation)
		distributions.POST("/:id/approve", h.approve)
		distributions.POST("/:id/execute", h.execute)
		distributions.POST("/:id/publish", h.publish)
		distributions.POST("/:id/cancel", h.cancel)
		distributions.GET("/:id/journal-entries", h.getJournalEntries)
		distributions.GET("/:id/transfer-batch", h.getTransferBatch)
	}
}

func (h *distributionHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	distribution, err := h.distributionService.CreateDraft(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidPolicy), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create distribution draft", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create distribution"})
		}
		return
	}

	logger.Info("Distribution draft created", slog.String("distribution_id", distribution.DistributionID))
	c.JSON(http.StatusCreated, dto.ToDistributionResponse(*distribution))
}

func (h *distributionHandler) getDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	distribution, err := h.distributionService.GetDistribution(c.Request.Context(), distributionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Distribution not found"})
		} else {
			logger.Error("Failed to get distribution", slog.String("distribution_id", distributionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve distribution"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDistributionResponse(*distribution))
}

func (h *distributionHandler) simulate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.distributionService.Simulate(c.Request.Context(), distributionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotSimulatable), errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidPolicy), errors.Is(err, apperrors.ErrInvalidRoster):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to simulate distribution", slog.String("distribution_id", distributionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate distribution"})
		}
		return
	}

	distribution, err := h.distributionService.GetDistribution(c.Request.Context(), distributionID)
	if err != nil {
		logger.Error("Failed to reload distribution after simulation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate distribution"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSimulationResponse(*distribution, *result))
}

func (h *distributionHandler) getSimulation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	result, err := h.distributionService.GetSimulation(c.Request.Context(), distributionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get simulation", slog.String("distribution_id", distributionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve simulation"})
		}
		return
	}

	distribution, err := h.distributionService.GetDistribution(c.Request.Context(), distributionID)
	if err != nil {
		logger.Error("Failed to load distribution for simulation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve simulation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSimulationResponse(*distribution, *result))
}

func (h *distributionHandler) approve(c *gin.Context) {
	h.lifecycleAction(c, "approve", h.distributionService.Approve)
}

func (h *distributionHandler) execute(c *gin.Context) {
	h.lifecycleAction(c, "execute", h.distributionService.Execute)
}

func (h *distributionHandler) publish(c *gin.Context) {
	h.lifecycleAction(c, "publish", h.distributionService.Publish)
}

func (h *distributionHandler) cancel(c *gin.Context) {
	h.lifecycleAction(c, "cancel", h.distributionService.Cancel)
}

// lifecycleAction runs one state-machine action and maps its outcome to HTTP.
func (h *distributionHandler) lifecycleAction(c *gin.Context, action string, fn func(ctx context.Context, distributionID, userID string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := fn(c.Request.Context(), distributionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStaleApproval),
			errors.Is(err, apperrors.ErrExecutionInProgress),
			errors.Is(err, apperrors.ErrPeriodClosed),
			errors.Is(err, apperrors.ErrDuplicate),
			errors.Is(err, services.ErrNotApprovable),
			errors.Is(err, services.ErrNotExecutable),
			errors.Is(err, services.ErrNotPublishable),
			errors.Is(err, services.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Distribution action failed",
				slog.String("action", action),
				slog.String("distribution_id", distributionID),
				slog.String("error", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " distribution"})
		}
		return
	}

	distribution, err := h.distributionService.GetDistribution(c.Request.Context(), distributionID)
	if err != nil {
		logger.Error("Failed to reload distribution after action", slog.String("error", err.Error()))
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToDistributionResponse(*distribution))
}

func (h *distributionHandler) getJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	entries, linesByJournal, err := h.journalService.GetEntriesByReference(c.Request.Context(), services.ReferenceTypeDistribution, distributionID)
	if err != nil {
		logger.Error("Failed to get journal entries", slog.String("distribution_id", distributionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entries"})
		return
	}

	resp := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.ToJournalEntryResponse(entry, linesByJournal[entry.JournalID]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *distributionHandler) getTransferBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	distributionID := c.Param("id")

	batch, lines, warnings, err := h.transferService.GetBatchByDistribution(c.Request.Context(), distributionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get transfer batch", slog.String("distribution_id", distributionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transfer batch"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferBatchResponse(*batch, lines, warnings))
}
