package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to ledgers.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ls)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:id", h.getLedger)
	}
}

// createLedger godoc
// @Summary Create a ledger
// @Description Creates a ledger. The code is generated from the name when omitted.
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledger body dto.CreateLedgerRequest true "Ledger details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Ledger already exists"
// @Security BearerAuth
// @Router /ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), session, req)
	if err != nil {
		respondWithError(c, err, "Failed to create ledger")
		return
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("code", ledger.Code))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// getLedger godoc
// @Summary Get a ledger by ID
// @Tags ledgers
// @Produce  json
// @Param   id path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledgers/{id} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// listLedgers godoc
// @Summary List ledgers
// @Tags ledgers
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLedgersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledgers [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ListLedgersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err, "query parameters")
		return
	}

	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context(), session, params)
	if err != nil {
		respondWithError(c, err, "Failed to list ledgers")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgersResponse{Ledgers: dto.ToListLedgerResponse(ledgers)})
}
