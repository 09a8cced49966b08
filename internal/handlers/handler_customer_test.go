package handlers_test

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestMatchCustomer_NoMatch() {
	req := dto.MatchCustomerRequest{Name: "Acme Trades"}
	suite.mockCustomerService.On("MatchCustomer", mock.Anything, adminSession, req).
		Return(domain.MatchResult{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/match", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MatchCustomerResponse
	suite.decode(w, &resp)
	suite.False(resp.MatchFound)
	suite.Nil(resp.Ledger)
}

func (suite *HandlerTestSuite) TestMatchCustomer_Hit() {
	score := 0.95
	ledger := &domain.Ledger{LedgerID: "L1", Name: "Bharat Steels", Code: "BHAR-1234", Group: domain.GroupSundryDebtors}
	req := dto.MatchCustomerRequest{Name: "Bharat Steel"}
	suite.mockCustomerService.On("MatchCustomer", mock.Anything, adminSession, req).
		Return(domain.MatchResult{MatchFound: true, Ledger: ledger, Reason: domain.ReasonHighNameSimilarity, SimilarityScore: &score}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/match", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MatchCustomerResponse
	suite.decode(w, &resp)
	suite.True(resp.MatchFound)
	suite.Require().NotNil(resp.Ledger)
	suite.Equal("BHAR-1234", resp.Ledger.Code)
	suite.Equal(domain.ReasonHighNameSimilarity, resp.Reason)
	suite.Require().NotNil(resp.SimilarityScore)
	suite.InDelta(0.95, *resp.SimilarityScore, 1e-9)
}

func (suite *HandlerTestSuite) TestCreateCustomer_Created() {
	ledger := domain.Ledger{LedgerID: "L9", Name: "Acme Trades", Code: "ACME-4821", Group: domain.GroupSundryDebtors}
	result := &matching.CreateCustomerResult{
		Customer: domain.Customer{CustomerID: "C9", Name: "Acme Trades", LedgerID: "L9"},
		Ledger:   &ledger,
	}
	suite.mockCustomerService.On("CreateCustomer", mock.Anything, adminSession,
		mock.MatchedBy(func(r dto.CreateCustomerRequest) bool { return r.Name == "Acme Trades" && r.CreateLedger }),
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers", map[string]any{"name": "Acme Trades", "createLedger": true})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateCustomerResponse
	suite.decode(w, &resp)
	suite.Equal("C9", resp.Customer.CustomerID)
	suite.Equal("L9", resp.Customer.LedgerID)
	suite.Require().NotNil(resp.Ledger)
	suite.Equal("ACME-4821", resp.Ledger.Code)
}

func (suite *HandlerTestSuite) TestCreateCustomer_ValidationFields() {
	w := suite.do(http.MethodPost, "/api/v1/customers", map[string]any{"email": "not-an-email"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("required", resp.Fields["Name"])
	suite.Equal("email", resp.Fields["Email"])
	suite.mockCustomerService.AssertNotCalled(suite.T(), "CreateCustomer")
}

func (suite *HandlerTestSuite) TestGetCustomer_NotFound() {
	suite.mockCustomerService.On("GetCustomer", mock.Anything, adminSession, "C404").
		Return(nil, apperrors.NewNotFoundError("Customer not found: C404")).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/C404", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("Customer not found: C404", resp.Error)
}

func (suite *HandlerTestSuite) TestListCustomers_DefaultsAndInternalError() {
	suite.mockCustomerService.On("ListCustomers", mock.Anything, adminSession, dto.ListCustomersParams{Limit: 20, Offset: 0}).
		Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("Failed to list customers", resp.Error)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestListCustomers_InvalidLimit() {
	w := suite.do(http.MethodGet, "/api/v1/customers?limit=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteCustomer() {
	suite.mockCustomerService.On("DeleteCustomer", mock.Anything, adminSession, "C1").Return(nil).Once()
	suite.mockCustomerService.On("DeleteCustomer", mock.Anything, adminSession, "C2").
		Return(apperrors.NewForbiddenError("Role ACCOUNTANT cannot delete customers")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/customers/C1", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/customers/C2", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestSyncLedgers() {
	result := &matching.SyncResult{
		UpdatedCustomers: []domain.Customer{{CustomerID: "C1", LedgerID: "L1"}},
		NewLedgers:       []domain.Ledger{{LedgerID: "L1", Code: "ACME-1000"}},
		Logs:             []domain.AuditLogEntry{{ID: "A1", Action: domain.ActionSync, Status: domain.StatusSuccess}},
	}
	suite.mockCustomerService.On("SyncLedgers", mock.Anything, adminSession).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/sync", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncLedgersResponse
	suite.decode(w, &resp)
	suite.Len(resp.UpdatedCustomers, 1)
	suite.Len(resp.NewLedgers, 1)
	suite.Equal(domain.ActionSync, resp.Logs[0].Action)
}

func (suite *HandlerTestSuite) TestSyncLedgers_AlreadyRunning() {
	suite.mockCustomerService.On("SyncLedgers", mock.Anything, adminSession).
		Return(nil, apperrors.NewConflictError("Another ledger sync or merge is in progress")).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/sync", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestMergeCustomers() {
	req := dto.MergeCustomersRequest{PrimaryID: "P", SecondaryIDs: []string{"S1", "S2"}, MergeBalances: true}
	suite.mockCustomerService.On("MergeCustomers", mock.Anything, adminSession, req).Return(&domain.MergeResult{
		PrimaryID:           "P",
		MergedIDs:           []string{"S1", "S2"},
		ConsolidatedBalance: decimal.NewFromInt(130),
		AuditLog:            domain.AuditLogEntry{ID: "A1", Action: domain.ActionMerge},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers/merge", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MergeCustomersResponse
	suite.decode(w, &resp)
	suite.Equal([]string{"S1", "S2"}, resp.MergedIDs)
	suite.True(decimal.NewFromInt(130).Equal(resp.ConsolidatedBalance))
	suite.Equal(domain.ActionMerge, resp.AuditLog.Action)
}

func (suite *HandlerTestSuite) TestMergeCustomers_RequiresSecondaries() {
	w := suite.do(http.MethodPost, "/api/v1/customers/merge", map[string]any{"primaryID": "P", "secondaryIDs": []string{}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestImportCustomers() {
	suite.mockImportService.On("ImportCustomers", mock.Anything, adminSession, mock.Anything).
		Return(&dto.ImportResponse{Imported: 2, Skipped: 1, Failed: 1}, nil).Once()

	w := suite.upload("/api/v1/customers/import", "customers.xlsx", []byte("PK fake workbook"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ImportResponse
	suite.decode(w, &resp)
	suite.Equal(2, resp.Imported)
	suite.Equal(1, resp.Skipped)
	suite.Equal(1, resp.Failed)
}

func (suite *HandlerTestSuite) TestImportCustomers_MissingFile() {
	w := suite.do(http.MethodPost, "/api/v1/customers/import", strings.NewReader("{}"))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockImportService.AssertNotCalled(suite.T(), "ImportCustomers")
}
