package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/middleware"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	importService   portssvc.ImportSvc
	posthogClient   *utils.PosthogClientWrapper
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade, is portssvc.ImportSvc, ph *utils.PosthogClientWrapper) *customerHandler {
	return &customerHandler{
		customerService: cs,
		importService:   is,
		posthogClient:   ph,
	}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, is portssvc.ImportSvc, ph *utils.PosthogClientWrapper) {
	h := newCustomerHandler(cs, is, ph)

	customers := rg.Group("/customers")
	{
		customers.POST("/match", h.matchCustomer)
		customers.POST("/sync", h.syncLedgers)
		customers.POST("/merge", h.mergeCustomers)
		customers.POST("/import", h.importCustomers)
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

// matchCustomer godoc
// @Summary Find an existing ledger for a customer
// @Description Looks up a ledger by exact GSTIN, then exact email or phone, then name similarity. A miss returns matchFound=false.
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   candidate body dto.MatchCustomerRequest true "Customer details to match"
// @Success 200 {object} dto.MatchCustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/match [post]
func (h *customerHandler) matchCustomer(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.MatchCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}

	result, err := h.customerService.MatchCustomer(c.Request.Context(), session, req)
	if err != nil {
		respondWithError(c, err, "Failed to match customer")
		return
	}

	resp := dto.MatchCustomerResponse{
		MatchFound:      result.MatchFound,
		Reason:          result.Reason,
		SimilarityScore: result.SimilarityScore,
	}
	if result.Ledger != nil {
		ledger := dto.ToLedgerResponse(result.Ledger)
		resp.Ledger = &ledger
	}
	c.JSON(http.StatusOK, resp)
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer, linking an existing ledger or creating a new one when requested
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CreateCustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Linked ledger not found"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), session, req)
	if err != nil {
		respondWithError(c, err, "Failed to create customer")
		return
	}

	resp := dto.CreateCustomerResponse{Customer: dto.ToCustomerResponse(&result.Customer)}
	if result.Ledger != nil {
		ledger := dto.ToLedgerResponse(result.Ledger)
		resp.Ledger = &ledger
	}
	logger.Info("Customer created", slog.String("customer_id", result.Customer.CustomerID), slog.Bool("ledger_created", result.Ledger != nil))
	c.JSON(http.StatusCreated, resp)
}

// getCustomer godoc
// @Summary Get a customer
// @Description Returns the customer with its ledger code and outstanding balance
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 200 {object} dto.CustomerView
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	view, err := h.customerService.GetCustomer(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, view)
}

// listCustomers godoc
// @Summary List customers
// @Description Lists active customers ordered by name with their ledger code and outstanding balance
// @Tags customers
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err, "query parameters")
		return
	}

	views, err := h.customerService.ListCustomers(c.Request.Context(), session, params)
	if err != nil {
		respondWithError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ListCustomersResponse{Customers: views})
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Soft-deletes a customer. Its ledger is kept.
// @Tags customers
// @Param   id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.customerService.DeleteCustomer(c.Request.Context(), session, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}

// syncLedgers godoc
// @Summary Backfill ledgers
// @Description Links every customer without a ledger to a matching ledger, or creates one
// @Tags customers
// @Produce  json
// @Success 200 {object} dto.SyncLedgersResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Another sync or merge is running"
// @Security BearerAuth
// @Router /customers/sync [post]
func (h *customerHandler) syncLedgers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	result, err := h.customerService.SyncLedgers(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err, "Failed to sync ledgers")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "customer_ledgers_synced", map[string]any{
		"updated_customers": len(result.UpdatedCustomers),
		"new_ledgers":       len(result.NewLedgers),
	})
	c.JSON(http.StatusOK, dto.SyncLedgersResponse{
		UpdatedCustomers: dto.ToListCustomerResponse(result.UpdatedCustomers),
		NewLedgers:       dto.ToListLedgerResponse(result.NewLedgers),
		Logs:             dto.ToListAuditLogResponse(result.Logs),
	})
}

// mergeCustomers godoc
// @Summary Merge duplicate customers
// @Description Folds the secondary customers into the primary, optionally consolidating ledger balances
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   merge body dto.MergeCustomersRequest true "Primary and secondary customer ids"
// @Success 200 {object} dto.MergeCustomersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/merge [post]
func (h *customerHandler) mergeCustomers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req dto.MergeCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, "request format")
		return
	}

	result, err := h.customerService.MergeCustomers(c.Request.Context(), session, req)
	if err != nil {
		respondWithError(c, err, "Failed to merge customers")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "customers_merged", map[string]any{
		"merged_count":   len(result.MergedIDs),
		"merge_balances": req.MergeBalances,
	})
	c.JSON(http.StatusOK, dto.MergeCustomersResponse{
		PrimaryID:           result.PrimaryID,
		MergedIDs:           result.MergedIDs,
		ConsolidatedBalance: result.ConsolidatedBalance,
		AuditLog:            dto.ToAuditLogResponse(result.AuditLog),
	})
}

// importCustomers godoc
// @Summary Import customers from a spreadsheet
// @Description Reads customers from the first sheet of an xlsx file. Rows are imported, skipped as duplicates or failed individually.
// @Tags customers
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "xlsx workbook"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/import [post]
func (h *customerHandler) importCustomers(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	file, _, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.importService.ImportCustomers(c.Request.Context(), session, file)
	if err != nil {
		respondWithError(c, err, "Failed to import customers")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "customers_imported", map[string]any{
		"imported": resp.Imported,
		"skipped":  resp.Skipped,
		"failed":   resp.Failed,
	})
	c.JSON(http.StatusOK, resp)
}
