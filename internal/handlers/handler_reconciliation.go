package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/core/reconcile"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/finledger/ledger_backend/internal/middleware"
)

// reconciliationHandler handles HTTP requests related to reconciliation runs.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers routes related to reconciliations.
// Running and overriding reconciliations is accountant/admin work; reading is
// open to any authenticated user.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	accountantOrAdmin := middleware.RequireRoles(string(domain.RoleAdmin), string(domain.RoleAccountant))

	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.POST("/calculate", accountantOrAdmin, h.calculate)
		reconciliations.POST("/preview", h.preview)
		reconciliations.GET("", h.listReconciliations)
		reconciliations.GET("/:id", h.getReconciliation)
		reconciliations.POST("/:id/override", accountantOrAdmin, h.override)
	}
}

func (h *reconciliationHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CalculateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.reconciliationService.Calculate(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to calculate reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to calculate reconciliation"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

// preview runs the engine without persisting, for the ad hoc client
// reconciliation view.
func (h *reconciliationHandler) preview(c *gin.Context) {
	var req dto.CalculateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.reconciliationService.Preview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to preview reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to preview reconciliation"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	var params dto.ListReconciliationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), params)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list reconciliations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reconciliations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReconciliationResponse(recs))
}

func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	rec, err := h.reconciliationService.GetReconciliationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reconciliation not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get reconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve reconciliation"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) override(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OverrideReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.reconciliationService.Override(c.Request.Context(), c.Param("id"), reconcile.OverrideAction(req.Action), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reconciliation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to override reconciliation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to override reconciliation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}
