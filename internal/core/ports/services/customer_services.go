package services

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomer returns a customer with its ledger code and outstanding balance.
	GetCustomer(ctx context.Context, session domain.SessionContext, customerID string) (*dto.CustomerView, error)

	// ListCustomers returns a page of customers with their ledger code and outstanding balance.
	ListCustomers(ctx context.Context, session domain.SessionContext, params dto.ListCustomersParams) ([]dto.CustomerView, error)

	// MatchCustomer looks for an existing ledger for customer-like input. A miss is not an error.
	MatchCustomer(ctx context.Context, session domain.SessionContext, req dto.MatchCustomerRequest) (domain.MatchResult, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer creates a customer and, when requested, its ledger.
	CreateCustomer(ctx context.Context, session domain.SessionContext, req dto.CreateCustomerRequest) (*matching.CreateCustomerResult, error)

	// DeleteCustomer soft-deletes a customer.
	DeleteCustomer(ctx context.Context, session domain.SessionContext, customerID string) error
}

// CustomerMaintenanceSvc defines the bulk operations on the customer book
type CustomerMaintenanceSvc interface {
	// SyncLedgers links or creates a ledger for every customer without one.
	SyncLedgers(ctx context.Context, session domain.SessionContext) (*matching.SyncResult, error)

	// MergeCustomers folds duplicate customers into a primary record.
	MergeCustomers(ctx context.Context, session domain.SessionContext, req dto.MergeCustomersRequest) (*domain.MergeResult, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
	CustomerMaintenanceSvc
}
