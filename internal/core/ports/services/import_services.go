package services

import (
	"context"
	"io"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
)

// ImportSvc loads spreadsheets into the system
type ImportSvc interface {
	// ImportCustomers reads customers from the first sheet of an xlsx workbook.
	ImportCustomers(ctx context.Context, session domain.SessionContext, r io.Reader) (*dto.ImportResponse, error)

	// ImportStatement appends statement lines (or book entries) to a bank account. The
	// format is chosen from the file name: .csv or .xlsx.
	ImportStatement(ctx context.Context, session domain.SessionContext, bankAccountID string, side domain.TransactionSide, filename string, r io.Reader) (*dto.ImportStatementResponse, error)
}
