package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type auditLogHandler struct {
	auditLogService portssvc.AuditLogSvc
}

func registerAuditLogRoutes(rg *gin.RouterGroup, as portssvc.AuditLogSvc) {
	h := &auditLogHandler{auditLogService: as}

	logs := rg.Group("/audit-logs")
	{
		logs.GET("", h.listAuditLogs)
		logs.GET("/export", h.exportAuditLogs)
	}
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Lists entries newest first. Pass nextToken from the previous page to continue.
// @Tags audit-logs
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Param   action query string false "Filter by action"
// @Param   entity query string false "Filter by entity"
// @Param   status query string false "Filter by status"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditLogHandler) listAuditLogs(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err, "query parameters")
		return
	}

	resp, err := h.auditLogService.ListAuditLogs(c.Request.Context(), session, params)
	if err != nil {
		respondWithError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportAuditLogs godoc
// @Summary Export audit log entries
// @Description Downloads every entry matching the filters as an xlsx workbook
// @Tags audit-logs
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   action query string false "Filter by action"
// @Param   entity query string false "Filter by entity"
// @Param   status query string false "Filter by status"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /audit-logs/export [get]
func (h *auditLogHandler) exportAuditLogs(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err, "query parameters")
		return
	}

	// Buffered so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.auditLogService.ExportAuditLogs(c.Request.Context(), session, params, &buf); err != nil {
		respondWithError(c, err, "Failed to export audit logs")
		return
	}

	filename := fmt.Sprintf("audit-logs-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
