package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/middleware"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles bank accounts and their reconciliation sessions.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
	importService         portssvc.ImportSvc
	posthogClient         *utils.PosthogClientWrapper
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade, is portssvc.ImportSvc, ph *utils.PosthogClientWrapper) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
		importService:         is,
		posthogClient:         ph,
	}
}

// registerReconciliationRoutes registers bank account and reconciliation routes.
func registerReconciliationRoutes(rg *gin.RouterGroup, rs portssvc.ReconciliationSvcFacade, is portssvc.ImportSvc, ph *utils.PosthogClientWrapper) {
	h := newReconciliationHandler(rs, is, ph)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.GET("", h.listBankAccounts)
		accounts.POST("", h.createBankAccount)
		accounts.POST("/:id/statement", h.importStatement)

		recon := accounts.Group("/:id/reconciliation")
		recon.GET("", h.getSession)
		recon.POST("/match", h.manualMatch)
		recon.POST("/auto-match", h.autoMatch)
		recon.POST("/finish", h.finish)
	}
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags reconciliation
// @Produce  json
// @Success 200 {object} dto.ListBankAccountsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *reconciliationHandler) listBankAccounts(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	accounts, err := h.reconciliationService.ListBankAccounts(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListBankAccountsResponse{BankAccounts: accounts})
}

// createBankAccount godoc
// @Summary Register a bank account
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} domain.BankAccount
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Account number already registered for the bank"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *reconciliationHandler) createBankAccount(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}
	account, err := h.reconciliationService.CreateBankAccount(c.Request.Context(), session, req)
	if err != nil {
		respondWithError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// importStatement godoc
// @Summary Upload statement lines or book entries
// @Description Appends the rows of a csv or xlsx file to one side of the account. The whole file is rejected when any row is invalid.
// @Tags reconciliation
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   side query string false "BANK (default) or BOOK"
// @Param   file formData file true "csv or xlsx file"
// @Success 200 {object} dto.ImportStatementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/statement [post]
func (h *reconciliationHandler) importStatement(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	file, filename, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	side := domain.TransactionSide(strings.ToUpper(c.Query("side")))
	resp, err := h.importService.ImportStatement(c.Request.Context(), session, c.Param("id"), side, filename, file)
	if err != nil {
		respondWithError(c, err, "Failed to import statement")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Statement imported",
		slog.String("bank_account_id", resp.BankAccountID), slog.String("side", string(resp.Side)), slog.Int("lines", resp.Imported))
	c.JSON(http.StatusOK, resp)
}

// getSession godoc
// @Summary Get the reconciliation state of an account
// @Description Returns book entries, bank lines and the balance summary
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/reconciliation [get]
func (h *reconciliationHandler) getSession(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	resp, err := h.reconciliationService.GetSession(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to load reconciliation")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// manualMatch godoc
// @Summary Match a book entry with a bank line
// @Description Pairs the two when both are unmatched and their amounts agree. Otherwise matched=false and nothing changes.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   match body dto.ManualMatchRequest true "Book and bank transaction ids"
// @Success 200 {object} dto.ManualMatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/reconciliation/match [post]
func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}
	resp, err := h.reconciliationService.ManualMatch(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to match transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// autoMatch godoc
// @Summary Auto-match equal amounts
// @Description Pairs unmatched book entries with the first unmatched bank line of the same amount
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/reconciliation/auto-match [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	resp, err := h.reconciliationService.AutoMatch(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to auto-match transactions")
		return
	}
	middleware.PosthogEvent(c, h.posthogClient, "reconciliation_auto_matched", map[string]any{
		"pairs": len(resp.Pairs),
	})
	c.JSON(http.StatusOK, resp)
}

// finish godoc
// @Summary Finish reconciliation
// @Description Records the reconciliation when the difference is zero
// @Tags reconciliation
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} domain.BankAccount
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Difference is not zero"
// @Security BearerAuth
// @Router /bank-accounts/{id}/reconciliation/finish [post]
func (h *reconciliationHandler) finish(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	account, err := h.reconciliationService.FinishReconciliation(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to finish reconciliation")
		return
	}
	c.JSON(http.StatusOK, account)
}
