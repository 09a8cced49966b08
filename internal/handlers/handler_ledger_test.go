package handlers_test

import (
	"io"
	"net/http"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateLedger() {
	suite.mockLedgerService.On("CreateLedger", mock.Anything, adminSession,
		mock.MatchedBy(func(r dto.CreateLedgerRequest) bool {
			return r.Name == "Office Rent" && r.Group == domain.GroupIndirectExpenses
		}),
	).Return(&domain.Ledger{LedgerID: "L1", Name: "Office Rent", Code: "OFFI-4821", Group: domain.GroupIndirectExpenses}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledgers", map[string]any{"name": "Office Rent", "group": "Indirect Expenses"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LedgerResponse
	suite.decode(w, &resp)
	suite.Equal("OFFI-4821", resp.Code)
}

func (suite *HandlerTestSuite) TestCreateLedger_Duplicate() {
	suite.mockLedgerService.On("CreateLedger", mock.Anything, adminSession, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledgers", map[string]any{"name": "Office Rent", "group": "Indirect Expenses"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAndListLedgers() {
	ledger := domain.Ledger{LedgerID: "L1", Name: "Office Rent"}
	suite.mockLedgerService.On("GetLedger", mock.Anything, adminSession, "L1").Return(&ledger, nil).Once()
	suite.mockLedgerService.On("ListLedgers", mock.Anything, adminSession, dto.ListLedgersParams{Limit: 5, Offset: 10}).
		Return([]domain.Ledger{ledger}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledgers/L1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/ledgers?limit=5&offset=10", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLedgersResponse
	suite.decode(w, &resp)
	suite.Len(resp.Ledgers, 1)
}

func (suite *HandlerTestSuite) TestListAuditLogs() {
	token := "abc"
	params := dto.ListAuditLogsParams{Limit: 10, NextToken: &token, Action: domain.ActionMerge}
	next := "def"
	suite.mockAuditLogService.On("ListAuditLogs", mock.Anything, adminSession, params).Return(&dto.ListAuditLogsResponse{
		Logs:      []dto.AuditLogResponse{{ID: "A1", Action: domain.ActionMerge}},
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/audit-logs?limit=10&nextToken=abc&action=Merge", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAuditLogsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Logs, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("def", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestExportAuditLogs() {
	suite.mockAuditLogService.On("ExportAuditLogs", mock.Anything, adminSession,
		mock.MatchedBy(func(p dto.ListAuditLogsParams) bool { return p.Status == domain.StatusFailed }), mock.Anything,
	).Run(func(args mock.Arguments) {
		_, _ = args.Get(3).(io.Writer).Write([]byte("xlsx-bytes"))
	}).Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/audit-logs/export?status=Failed", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "audit-logs-")
	suite.Equal("xlsx-bytes", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportAuditLogs_Forbidden() {
	suite.mockAuditLogService.On("ExportAuditLogs", mock.Anything, adminSession, mock.Anything, mock.Anything).
		Return(apperrors.NewForbiddenError("Role VIEWER cannot view the audit log")).Once()

	w := suite.do(http.MethodGet, "/api/v1/audit-logs/export", nil)

	suite.Equal(http.StatusForbidden, w.Code)
}
