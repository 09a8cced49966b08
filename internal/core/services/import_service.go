package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/platform/lock"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
	"github.com/SscSPs/ledger_recon_app/internal/utils/spreadsheet"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// statementDateLayouts are tried in order when parsing statement dates. Day-first forms
// read day before month for both year widths.
var statementDateLayouts = []string{
	"2006-01-02", "2006/01/02",
	"02/01/2006", "02-01-2006",
	"02/01/06", "02-01-06",
	time.RFC3339,
}

type importService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	auditRepo    portsrepo.AuditLogRepositoryFacade
	bankRepo     portsrepo.BankReconciliationRepositoryFacade
	engine       *matching.Engine
	locker       lock.Locker
	lockTTL      time.Duration
	validate     *validator.Validate
	ids          idgen.Generator
}

// ImportServiceOption is a functional option for configuring the import service
type ImportServiceOption func(*importService)

// WithImportEngine sets the matching engine used to link imported customers.
func WithImportEngine(engine *matching.Engine) ImportServiceOption {
	return func(s *importService) { s.engine = engine }
}

// WithImportLocker sets the lock shared with sync and merge.
func WithImportLocker(locker lock.Locker, ttl time.Duration) ImportServiceOption {
	return func(s *importService) {
		s.locker = locker
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithImportIDs sets the id source for statement lines.
func WithImportIDs(ids idgen.Generator) ImportServiceOption {
	return func(s *importService) { s.ids = ids }
}

// WithImportPermissions sets the permission service.
func WithImportPermissions(p portssvc.PermissionSvc) ImportServiceOption {
	return func(s *importService) { s.Permissions = p }
}

// NewImportService creates the spreadsheet import service.
func NewImportService(repos portsrepo.RepositoryProvider, options ...ImportServiceOption) portssvc.ImportSvc {
	svc := &importService{
		customerRepo: repos.CustomerRepo,
		ledgerRepo:   repos.LedgerRepo,
		auditRepo:    repos.AuditLogRepo,
		bankRepo:     repos.BankRepo,
		engine:       matching.NewEngine(),
		locker:       lock.NewLocalLocker(),
		lockTTL:      DefaultLockTTL,
		validate:     validator.New(),
		ids:          idgen.UUID(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ImportSvc = (*importService)(nil)

// ImportCustomers reads the first sheet of an xlsx workbook. Each row becomes a customer
// linked to a matching ledger, or to a new ledger when nothing matches. Rows that fail
// validation are recorded as Failed, rows duplicating an existing customer (same GSTIN or
// same name) as Skipped. One bad row never aborts the import.
func (s *importService) ImportCustomers(ctx context.Context, session domain.SessionContext, r io.Reader) (*dto.ImportResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersImport); err != nil {
		return nil, err
	}

	table, err := spreadsheet.Read(r, spreadsheet.FormatXLSX)
	if err != nil {
		return nil, apperrors.NewAppError(400, "Could not read customer workbook", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	rows, err := customerRows(table)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportResponse{Logs: []dto.AuditLogResponse{}}
	err = lock.WithLock(ctx, s.locker, customerBookLockKey, s.lockTTL, func() error {
		customers, err := s.customerRepo.ListAllCustomers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
		ledgers, err := s.ledgerRepo.ListAllLedgers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ledgers: %w", err)
		}

		known := newCustomerIndex(customers)
		var outcomes []domain.AuditLogEntry
		for _, row := range rows {
			entry, ledger, err := s.importCustomerRow(ctx, session, row, known, ledgers)
			if err != nil {
				s.LogError(ctx, err, "Customer import row failed", slog.Int("row", row.Row))
				entry = s.engine.NewAuditEntry(domain.ActionImport, domain.EntityCustomer, domain.StatusFailed,
					fmt.Sprintf("Row %d rejected", row.Row), saveFailureDetails(err), session.UserID)
			}
			if ledger != nil {
				ledgers = append(ledgers, *ledger)
			}
			switch entry.Status {
			case domain.StatusSuccess:
				res.Imported++
			case domain.StatusSkipped:
				res.Skipped++
				outcomes = append(outcomes, entry)
			default:
				res.Failed++
				outcomes = append(outcomes, entry)
			}
			res.Logs = append(res.Logs, dto.ToAuditLogResponse(entry))
		}

		if len(outcomes) > 0 {
			if err := s.auditRepo.SaveAuditLogs(ctx, outcomes); err != nil {
				return fmt.Errorf("failed to save import audit logs: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Customer import failed", slog.Int("imported", res.Imported))
		return nil, err
	}

	s.LogInfo(ctx, "Customer import completed",
		slog.Int("imported", res.Imported), slog.Int("skipped", res.Skipped), slog.Int("failed", res.Failed))
	return res, nil
}

// importCustomerRow handles one row. Successful rows are persisted together with their
// audit entry; the caller persists Skipped and Failed entries. The returned ledger is set
// when a new ledger was created and should join the matching pool. An error means the
// row could not be persisted; nothing from it was saved.
func (s *importService) importCustomerRow(ctx context.Context, session domain.SessionContext, row dto.ImportCustomerRow, known *customerIndex, ledgers []domain.Ledger) (domain.AuditLogEntry, *domain.Ledger, error) {
	fail := func(status domain.AuditStatus, description, details string) domain.AuditLogEntry {
		return s.engine.NewAuditEntry(domain.ActionImport, domain.EntityCustomer, status, description, details, session.UserID)
	}

	if err := s.validate.Struct(row); err != nil {
		return fail(domain.StatusFailed, fmt.Sprintf("Row %d rejected", row.Row),
			utils.DescribeValidationErrors(utils.ProcessValidationErrors(err))), nil, nil
	}
	if existing, ok := known.find(row.Name, row.GSTIN); ok {
		return fail(domain.StatusSkipped, fmt.Sprintf("Row %d skipped: %q already exists", row.Row, row.Name),
			fmt.Sprintf("Existing customer %s", existing)), nil, nil
	}

	input := matching.CreateCustomerInput{
		Name:                 row.Name,
		GSTIN:                row.GSTIN,
		PAN:                  row.PAN,
		Email:                row.Email,
		Phone:                row.Phone,
		BillingAddress:       row.BillingAddress,
		ShippingAddress:      row.ShippingAddress,
		DefaultPaymentTerms:  row.DefaultPaymentTerms,
		DefaultPlaceOfSupply: row.DefaultPlaceOfSupply,
	}
	match := s.engine.FindMatchingLedger(domain.MatchCandidate{Name: row.Name, GSTIN: row.GSTIN, Email: row.Email, Phone: row.Phone}, ledgers)
	details := "Created new ledger"
	if match.MatchFound {
		input.ExistingLedgerID = match.Ledger.LedgerID
		details = fmt.Sprintf("Linked to ledger %q (%s)", match.Ledger.Name, match.Reason)
	} else {
		input.CreateLedger = true
	}

	result, err := s.engine.CreateCustomerWithLedger(input, session.UserID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return fail(domain.StatusFailed, fmt.Sprintf("Row %d rejected", row.Row), appErr.Message), nil, nil
		}
		return domain.AuditLogEntry{}, nil, err
	}

	entry := s.engine.NewAuditEntry(domain.ActionImport, domain.EntityCustomer, domain.StatusSuccess,
		fmt.Sprintf("Row %d imported as customer %q", row.Row, result.Customer.Name), details, session.UserID)
	if err := s.customerRepo.SaveCustomer(ctx, result.Customer, result.Ledger, []domain.AuditLogEntry{entry}); err != nil {
		return domain.AuditLogEntry{}, nil, fmt.Errorf("failed to save customer from row %d: %w", row.Row, err)
	}
	known.add(result.Customer)
	return entry, result.Ledger, nil
}

func saveFailureDetails(err error) string {
	if errors.Is(err, apperrors.ErrDuplicate) {
		return "Could not save customer: customer or ledger already exists"
	}
	return "Could not save customer"
}

// customerRows maps workbook columns by header name.
func customerRows(t spreadsheet.Table) ([]dto.ImportCustomerRow, error) {
	nameCol := t.Column("Name", "Customer Name")
	if nameCol < 0 {
		return nil, apperrors.NewValidationError("Customer workbook must have a Name column")
	}
	cols := struct{ gstin, pan, email, phone, billing, shipping, terms, place int }{
		gstin:    t.Column("GSTIN"),
		pan:      t.Column("PAN"),
		email:    t.Column("Email"),
		phone:    t.Column("Phone", "Mobile"),
		billing:  t.Column("Billing Address", "Address"),
		shipping: t.Column("Shipping Address"),
		terms:    t.Column("Payment Terms", "Default Payment Terms"),
		place:    t.Column("Place of Supply", "Default Place of Supply"),
	}

	rows := make([]dto.ImportCustomerRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = dto.ImportCustomerRow{
			Row:                  i + 2, // 1-based, after the header
			Name:                 spreadsheet.Cell(r, nameCol),
			GSTIN:                strings.ToUpper(spreadsheet.Cell(r, cols.gstin)),
			PAN:                  strings.ToUpper(spreadsheet.Cell(r, cols.pan)),
			Email:                spreadsheet.Cell(r, cols.email),
			Phone:                spreadsheet.Cell(r, cols.phone),
			BillingAddress:       spreadsheet.Cell(r, cols.billing),
			ShippingAddress:      spreadsheet.Cell(r, cols.shipping),
			DefaultPaymentTerms:  spreadsheet.Cell(r, cols.terms),
			DefaultPlaceOfSupply: spreadsheet.Cell(r, cols.place),
		}
	}
	return rows, nil
}

// customerIndex finds existing customers by GSTIN or case-insensitive name.
type customerIndex struct {
	byGSTIN map[string]string
	byName  map[string]string
}

func newCustomerIndex(customers []domain.Customer) *customerIndex {
	idx := &customerIndex{byGSTIN: map[string]string{}, byName: map[string]string{}}
	for _, c := range customers {
		idx.add(c)
	}
	return idx
}

func (idx *customerIndex) add(c domain.Customer) {
	if c.GSTIN != "" {
		idx.byGSTIN[c.GSTIN] = c.CustomerID
	}
	idx.byName[strings.ToLower(strings.TrimSpace(c.Name))] = c.CustomerID
}

func (idx *customerIndex) find(name, gstin string) (string, bool) {
	if gstin != "" {
		if id, ok := idx.byGSTIN[gstin]; ok {
			return id, true
		}
	}
	id, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// ImportStatement appends lines to one side of a bank account. Columns are Date,
// Description and either Debit/Credit or a signed Amount (negative is a debit). The file is
// rejected as a whole if any line is invalid.
func (s *importService) ImportStatement(ctx context.Context, session domain.SessionContext, bankAccountID string, side domain.TransactionSide, filename string, r io.Reader) (*dto.ImportStatementResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationImport); err != nil {
		return nil, err
	}
	if side == "" {
		side = domain.SideBank
	}
	if side != domain.SideBank && side != domain.SideBook {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown side: %s", side))
	}

	format, err := spreadsheet.FormatFromFilename(filename)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	table, err := spreadsheet.Read(r, format)
	if err != nil {
		return nil, apperrors.NewAppError(400, "Could not read statement file", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
	}
	lines, err := s.statementLines(table)
	if err != nil {
		return nil, err
	}

	var imported int
	err = lock.WithLock(ctx, s.locker, lock.Key("bank-account", bankAccountID), s.lockTTL, func() error {
		if _, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
			return err
		}
		txns := make([]domain.BankTransaction, len(lines))
		for i, l := range lines {
			txns[i] = domain.BankTransaction{
				TransactionID: s.ids.NewID(),
				BankAccountID: bankAccountID,
				Side:          side,
				Date:          l.Date,
				Description:   l.Description,
				Debit:         l.Debit,
				Credit:        l.Credit,
				Status:        domain.StatusUnmatched,
			}
		}
		if err := s.bankRepo.SaveTransactions(ctx, txns); err != nil {
			return fmt.Errorf("failed to save statement lines: %w", err)
		}
		imported = len(txns)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Statement import failed", slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Statement imported",
		slog.String("bank_account_id", bankAccountID), slog.String("side", string(side)), slog.Int("lines", imported))
	return &dto.ImportStatementResponse{BankAccountID: bankAccountID, Side: side, Imported: imported}, nil
}

func (s *importService) statementLines(t spreadsheet.Table) ([]dto.StatementLine, error) {
	dateCol := t.Column("Date", "Txn Date", "Value Date")
	descCol := t.Column("Description", "Narration", "Particulars")
	debitCol := t.Column("Debit", "Withdrawal", "Dr")
	creditCol := t.Column("Credit", "Deposit", "Cr")
	amountCol := t.Column("Amount")
	if dateCol < 0 {
		return nil, apperrors.NewValidationError("Statement must have a Date column")
	}
	if (debitCol < 0 || creditCol < 0) && amountCol < 0 {
		return nil, apperrors.NewValidationError("Statement must have Debit and Credit columns or an Amount column")
	}

	lines := make([]dto.StatementLine, 0, len(t.Rows))
	for i, r := range t.Rows {
		rowNo := i + 2
		date, err := parseStatementDate(spreadsheet.Cell(r, dateCol))
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: %v", rowNo, err))
		}
		line := dto.StatementLine{Row: rowNo, Date: date, Description: spreadsheet.Cell(r, descCol)}

		if debitCol >= 0 && creditCol >= 0 {
			if line.Debit, err = parseAmount(spreadsheet.Cell(r, debitCol)); err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: invalid debit: %v", rowNo, err))
			}
			if line.Credit, err = parseAmount(spreadsheet.Cell(r, creditCol)); err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: invalid credit: %v", rowNo, err))
			}
		} else {
			amount, err := parseAmount(spreadsheet.Cell(r, amountCol))
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: invalid amount: %v", rowNo, err))
			}
			line.Debit, line.Credit = decimal.Zero, decimal.Zero
			if amount.IsNegative() {
				line.Debit = amount.Neg()
			} else {
				line.Credit = amount
			}
		}

		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: debit and credit must not be negative", rowNo))
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: either debit or credit must be set", rowNo))
		}
		if err := s.validate.Struct(line); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Row %d: %s", rowNo, utils.DescribeValidationErrors(utils.ProcessValidationErrors(err))))
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("Statement has no lines")
	}
	return lines, nil
}

func parseStatementDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", v)
}

// parseAmount reads "1,250.50" style amounts. An empty cell is zero.
func parseAmount(v string) (decimal.Decimal, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}
