package handlers_test

import (
	"net/http"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/reconciliation"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestGetSession() {
	account := domain.BankAccount{BankAccountID: "B1", Name: "Current", OpeningBalance: decimal.NewFromInt(1250000)}
	suite.mockReconciliationService.On("GetSession", mock.Anything, adminSession, "B1").Return(&dto.ReconciliationResponse{
		Account: account,
		Summary: reconciliation.Summary{ReconciledBankBalance: decimal.NewFromInt(1300000)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/B1/reconciliation", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReconciliationResponse
	suite.decode(w, &resp)
	suite.Equal("B1", resp.Account.BankAccountID)
	suite.True(decimal.NewFromInt(1300000).Equal(resp.Summary.ReconciledBankBalance))
}

func (suite *HandlerTestSuite) TestGetSession_UnknownAccount() {
	suite.mockReconciliationService.On("GetSession", mock.Anything, adminSession, "nope").
		Return(nil, apperrors.NewNotFoundError("Bank account not found: nope")).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/nope/reconciliation", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestManualMatch() {
	req := dto.ManualMatchRequest{BookID: "K1", BankID: "T1"}
	suite.mockReconciliationService.On("ManualMatch", mock.Anything, adminSession, "B1", req).
		Return(&dto.ManualMatchResponse{Matched: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/B1/reconciliation/match", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ManualMatchResponse
	suite.decode(w, &resp)
	suite.True(resp.Matched)
}

func (suite *HandlerTestSuite) TestManualMatch_MissingBankID() {
	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/B1/reconciliation/match", map[string]string{"bookID": "K1"})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Equal("required", resp.Fields["BankID"])
}

func (suite *HandlerTestSuite) TestAutoMatch() {
	suite.mockReconciliationService.On("AutoMatch", mock.Anything, adminSession, "B1").
		Return(&dto.AutoMatchResponse{Pairs: []reconciliation.Pair{{BookID: "K1", BankID: "T1"}}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/B1/reconciliation/auto-match", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AutoMatchResponse
	suite.decode(w, &resp)
	suite.Equal([]reconciliation.Pair{{BookID: "K1", BankID: "T1"}}, resp.Pairs)
}

func (suite *HandlerTestSuite) TestFinish_DifferenceNotZero() {
	suite.mockReconciliationService.On("FinishReconciliation", mock.Anything, adminSession, "B1").
		Return(nil, apperrors.NewConflictError("Cannot finish reconciliation, difference is 500.00")).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts/B1/reconciliation/finish", nil)

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Contains(resp.Error, "500.00")
}

func (suite *HandlerTestSuite) TestCreateAndListBankAccounts() {
	created := &domain.BankAccount{BankAccountID: "B2", Name: "Payroll", Currency: "INR"}
	suite.mockReconciliationService.On("CreateBankAccount", mock.Anything, adminSession,
		mock.MatchedBy(func(r dto.CreateBankAccountRequest) bool { return r.AccountNumber == "0001" && r.Currency == "INR" }),
	).Return(created, nil).Once()
	suite.mockReconciliationService.On("ListBankAccounts", mock.Anything, adminSession).
		Return([]domain.BankAccount{*created}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts", map[string]any{
		"name": "Payroll", "accountNumber": "0001", "bankName": "HDFC", "currency": "INR",
	})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/bank-accounts", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBankAccountsResponse
	suite.decode(w, &resp)
	suite.Len(resp.BankAccounts, 1)
}

func (suite *HandlerTestSuite) TestImportStatement_BookSide() {
	suite.mockImportService.On("ImportStatement", mock.Anything, adminSession, "B1", domain.SideBook, "ledger.csv", mock.Anything).
		Return(&dto.ImportStatementResponse{BankAccountID: "B1", Side: domain.SideBook, Imported: 2}, nil).Once()

	w := suite.upload("/api/v1/bank-accounts/B1/statement?side=book", "ledger.csv", []byte("Date,Amount\n2024-01-01,10\n2024-01-02,-5\n"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ImportStatementResponse
	suite.decode(w, &resp)
	suite.Equal(2, resp.Imported)
}

func (suite *HandlerTestSuite) TestImportStatement_BadRow() {
	suite.mockImportService.On("ImportStatement", mock.Anything, adminSession, "B1", domain.TransactionSide(""), "stmt.csv", mock.Anything).
		Return(nil, apperrors.NewValidationError("Row 3: invalid date \"yesterday\"")).Once()

	w := suite.upload("/api/v1/bank-accounts/B1/statement", "stmt.csv", []byte("Date,Amount\n"))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.decode(w, &resp)
	suite.Contains(resp.Error, "Row 3")
}
