package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, session domain.SessionContext, customerID string) (*dto.CustomerView, error) {
	args := m.Called(ctx, session, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerView), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, session domain.SessionContext, params dto.ListCustomersParams) ([]dto.CustomerView, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CustomerView), args.Error(1)
}

func (m *MockCustomerService) MatchCustomer(ctx context.Context, session domain.SessionContext, req dto.MatchCustomerRequest) (domain.MatchResult, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(domain.MatchResult), args.Error(1)
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, session domain.SessionContext, req dto.CreateCustomerRequest) (*matching.CreateCustomerResult, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.CreateCustomerResult), args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, session domain.SessionContext, customerID string) error {
	args := m.Called(ctx, session, customerID)
	return args.Error(0)
}

func (m *MockCustomerService) SyncLedgers(ctx context.Context, session domain.SessionContext) (*matching.SyncResult, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*matching.SyncResult), args.Error(1)
}

func (m *MockCustomerService) MergeCustomers(ctx context.Context, session domain.SessionContext, req dto.MergeCustomersRequest) (*domain.MergeResult, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MergeResult), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportCustomers(ctx context.Context, session domain.SessionContext, r io.Reader) (*dto.ImportResponse, error) {
	args := m.Called(ctx, session, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResponse), args.Error(1)
}

func (m *MockImportService) ImportStatement(ctx context.Context, session domain.SessionContext, bankAccountID string, side domain.TransactionSide, filename string, r io.Reader) (*dto.ImportStatementResponse, error) {
	args := m.Called(ctx, session, bankAccountID, side, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportStatementResponse), args.Error(1)
}

var _ portssvc.ImportSvc = (*MockImportService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateLedger(ctx context.Context, session domain.SessionContext, req dto.CreateLedgerRequest) (*domain.Ledger, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) GetLedger(ctx context.Context, session domain.SessionContext, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, session, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) ListLedgers(ctx context.Context, session domain.SessionContext, params dto.ListLedgersParams) ([]domain.Ledger, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock AuditLogService ---
type MockAuditLogService struct {
	mock.Mock
}

func (m *MockAuditLogService) ListAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditLogsResponse), args.Error(1)
}

func (m *MockAuditLogService) ExportAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams, w io.Writer) error {
	args := m.Called(ctx, session, params, w)
	return args.Error(0)
}

var _ portssvc.AuditLogSvc = (*MockAuditLogService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ListBankAccounts(ctx context.Context, session domain.SessionContext) ([]domain.BankAccount, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockReconciliationService) CreateBankAccount(ctx context.Context, session domain.SessionContext, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockReconciliationService) GetSession(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.ReconciliationResponse, error) {
	args := m.Called(ctx, session, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationResponse), args.Error(1)
}

func (m *MockReconciliationService) ManualMatch(ctx context.Context, session domain.SessionContext, bankAccountID string, req dto.ManualMatchRequest) (*dto.ManualMatchResponse, error) {
	args := m.Called(ctx, session, bankAccountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ManualMatchResponse), args.Error(1)
}

func (m *MockReconciliationService) AutoMatch(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.AutoMatchResponse, error) {
	args := m.Called(ctx, session, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutoMatchResponse), args.Error(1)
}

func (m *MockReconciliationService) FinishReconciliation(ctx context.Context, session domain.SessionContext, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, session, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)
