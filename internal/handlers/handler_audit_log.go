package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finledger/ledger_backend/internal/core/domain"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/finledger/ledger_backend/internal/middleware"
)

// auditLogHandler handles HTTP requests related to the audit trail.
type auditLogHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditLogHandler(as portssvc.AuditSvcFacade) *auditLogHandler {
	return &auditLogHandler{auditService: as}
}

// registerAuditLogRoutes registers the audit trail routes, admin only.
func registerAuditLogRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditLogHandler(auditService)

	auditLogs := rg.Group("/audit-logs", middleware.RequireRoles(string(domain.RoleAdmin)))
	{
		auditLogs.GET("", h.listAuditLogs)
	}
}

func (h *auditLogHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.auditService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list audit logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list audit logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogResponse(logs))
}
