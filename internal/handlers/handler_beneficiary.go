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

// beneficiaryHandler handles HTTP requests for the beneficiary roster.
type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

func newBeneficiaryHandler(bs portssvc.BeneficiarySvcFacade) *beneficiaryHandler {
	return &beneficiaryHandler{beneficiaryService: bs}
}

// registerBeneficiaryRoutes registers routes related to the roster.
func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := newBeneficiaryHandler(beneficiaryService)

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listEligible)
		beneficiaries.PUT("/:id/eligibility", h.setEligibility)
	}
}

func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBeneficiary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create beneficiary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create beneficiary"})
		}
		return
	}

	logger.Info("Beneficiary created", slog.String("beneficiary_id", beneficiary.BeneficiaryID))
	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(*beneficiary))
}

func (h *beneficiaryHandler) listEligible(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalPeriodID := c.Query("fiscalPeriodID")

	roster, err := h.beneficiaryService.ListEligible(c.Request.Context(), fiscalPeriodID)
	if err != nil {
		logger.Error("Failed to list eligible beneficiaries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list beneficiaries"})
		return
	}

	resp := make([]dto.BeneficiaryResponse, 0, len(roster))
	for _, beneficiary := range roster {
		resp = append(resp, dto.ToBeneficiaryResponse(beneficiary))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *beneficiaryHandler) setEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	beneficiaryID := c.Param("id")

	var req dto.SetEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setEligibility", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.beneficiaryService.SetEligibility(c.Request.Context(), beneficiaryID, *req.Eligible, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Beneficiary not found"})
		} else {
			logger.Error("Failed to set eligibility", slog.String("beneficiary_id", beneficiaryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update beneficiary"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
