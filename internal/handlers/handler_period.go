package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/dto"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// periodHandler handles HTTP requests for fiscal periods.
type periodHandler struct {
	closingService      portssvc.ClosingSvcFacade
	distributionService portssvc.DistributionSvcFacade
}

func newPeriodHandler(cs portssvc.ClosingSvcFacade, ds portssvc.DistributionSvcFacade) *periodHandler {
	return &periodHandler{closingService: cs, distributionService: ds}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade, distributionService portssvc.DistributionSvcFacade) {
	h := newPeriodHandler(closingService, distributionService)

	periods := rg.Group("/fiscal-periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.GET("/:id/summary", h.getPeriodSummary)
		periods.POST("/:id/close", h.closePeriod)
		periods.GET("/:id/distributions", h.listDistributions)
	}
}

func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.closingService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(*period))
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	period, err := h.closingService.GetPeriod(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
		} else {
			logger.Error("Failed to get fiscal period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(*period))
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.closingService.ListPeriods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fiscal periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		return
	}

	resp := make([]dto.PeriodResponse, 0, len(periods))
	for _, period := range periods {
		resp = append(resp, dto.ToPeriodResponse(period))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *periodHandler) getPeriodSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	summary, err := h.closingService.GetPeriodSummary(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
		} else {
			logger.Error("Failed to summarise fiscal period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarise fiscal period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(periodID, *summary))
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	closed, next, err := h.closingService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodClosed), errors.Is(err, apperrors.ErrExecutionInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close fiscal period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ClosePeriodResponse{
		ClosedPeriod: dto.ToPeriodResponse(*closed),
		NextPeriod:   dto.ToPeriodResponse(*next),
	})
}

func (h *periodHandler) listDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	distributions, err := h.distributionService.ListByPeriod(c.Request.Context(), periodID)
	if err != nil {
		logger.Error("Failed to list distributions", slog.String("period_id", periodID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list distributions"})
		return
	}

	resp := make([]dto.DistributionResponse, 0, len(distributions))
	for _, distribution := range distributions {
		resp = append(resp, dto.ToDistributionResponse(distribution))
	}
	c.JSON(http.StatusOK, resp)
}
