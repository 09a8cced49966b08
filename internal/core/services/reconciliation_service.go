package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/core/reconciliation"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/platform/lock"
	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
)

// reconciliationLockTTL bounds a single match or finish on one account.
const reconciliationLockTTL = 30 * time.Second

type reconciliationService struct {
	BaseService
	bankRepo portsrepo.BankReconciliationRepositoryFacade
	locker   lock.Locker
	ids      idgen.Generator
	now      func() time.Time
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationLocker sets the per-account lock.
func WithReconciliationLocker(locker lock.Locker) ReconciliationServiceOption {
	return func(s *reconciliationService) { s.locker = locker }
}

// WithReconciliationIDs sets the id source for bank accounts.
func WithReconciliationIDs(ids idgen.Generator) ReconciliationServiceOption {
	return func(s *reconciliationService) { s.ids = ids }
}

// WithReconciliationClock sets the time source used when finishing a session.
func WithReconciliationClock(now func() time.Time) ReconciliationServiceOption {
	return func(s *reconciliationService) { s.now = now }
}

// WithReconciliationPermissions sets the permission service.
func WithReconciliationPermissions(p portssvc.PermissionSvc) ReconciliationServiceOption {
	return func(s *reconciliationService) { s.Permissions = p }
}

// NewReconciliationService creates the bank reconciliation service.
func NewReconciliationService(bankRepo portsrepo.BankReconciliationRepositoryFacade, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{
		bankRepo: bankRepo,
		locker:   lock.NewLocalLocker(),
		ids:      idgen.UUID(),
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) ListBankAccounts(ctx context.Context, session domain.SessionContext) ([]domain.BankAccount, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationView); err != nil {
		return nil, err
	}
	accounts, err := s.bankRepo.ListBankAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *reconciliationService) CreateBankAccount(ctx context.Context, session domain.SessionContext, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationImport); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("Bank account name is required")
	}

	account := domain.BankAccount{
		BankAccountID:      s.ids.NewID(),
		Name:               strings.TrimSpace(req.Name),
		AccountNumber:      strings.TrimSpace(req.AccountNumber),
		BankName:           strings.TrimSpace(req.BankName),
		Currency:           strings.ToUpper(req.Currency),
		OpeningBalance:     req.OpeningBalance,
		CurrentBookBalance: req.CurrentBookBalance,
	}
	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save bank account", slog.String("account_number", account.AccountNumber))
		}
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *reconciliationService) GetSession(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.ReconciliationResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationView); err != nil {
		return nil, err
	}
	rs, err := s.loadSession(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReconciliationResponse(rs)
	return &resp, nil
}

func (s *reconciliationService) ManualMatch(ctx context.Context, session domain.SessionContext, bankAccountID string, req dto.ManualMatchRequest) (*dto.ManualMatchResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationMatch); err != nil {
		return nil, err
	}

	var res dto.ManualMatchResponse
	err := s.withAccountLock(ctx, bankAccountID, func() error {
		rs, err := s.loadSession(ctx, bankAccountID)
		if err != nil {
			return err
		}
		next, matched := reconciliation.ManualMatch(rs, req.BookID, req.BankID)
		if matched {
			if err := s.bankRepo.UpdateMatches(ctx, changedTransactions(next, reconciliation.Pair{BookID: req.BookID, BankID: req.BankID})); err != nil {
				return fmt.Errorf("failed to save match: %w", err)
			}
		}
		res = dto.ManualMatchResponse{Matched: matched, Session: dto.ToReconciliationResponse(next)}
		return nil
	})
	if err != nil {
		return nil, s.logFailure(ctx, err, "Manual match failed", bankAccountID)
	}

	if res.Matched {
		s.LogInfo(ctx, "Transactions matched",
			slog.String("bank_account_id", bankAccountID), slog.String("book_id", req.BookID), slog.String("bank_id", req.BankID))
	} else {
		s.LogDebug(ctx, "Manual match ignored", slog.String("book_id", req.BookID), slog.String("bank_id", req.BankID))
	}
	return &res, nil
}

func (s *reconciliationService) AutoMatch(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.AutoMatchResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationMatch); err != nil {
		return nil, err
	}

	var res dto.AutoMatchResponse
	err := s.withAccountLock(ctx, bankAccountID, func() error {
		rs, err := s.loadSession(ctx, bankAccountID)
		if err != nil {
			return err
		}
		next, pairs := reconciliation.AutoMatch(rs)
		if len(pairs) > 0 {
			if err := s.bankRepo.UpdateMatches(ctx, changedTransactions(next, pairs...)); err != nil {
				return fmt.Errorf("failed to save matches: %w", err)
			}
		}
		if pairs == nil {
			pairs = []reconciliation.Pair{}
		}
		res = dto.AutoMatchResponse{Pairs: pairs, Session: dto.ToReconciliationResponse(next)}
		return nil
	})
	if err != nil {
		return nil, s.logFailure(ctx, err, "Auto match failed", bankAccountID)
	}

	s.LogInfo(ctx, "Auto match completed", slog.String("bank_account_id", bankAccountID), slog.Int("pairs", len(res.Pairs)))
	return &res, nil
}

// FinishReconciliation stamps the account as reconciled. It refuses while any line is
// unmatched or the book and reconciled bank balances differ.
func (s *reconciliationService) FinishReconciliation(ctx context.Context, session domain.SessionContext, bankAccountID string) (*domain.BankAccount, error) {
	if err := s.Authorize(ctx, session, domain.PermReconciliationFinish); err != nil {
		return nil, err
	}

	var account domain.BankAccount
	err := s.withAccountLock(ctx, bankAccountID, func() error {
		rs, err := s.loadSession(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if err := reconciliation.Validate(rs); err != nil {
			return err
		}
		if blockers := reconciliation.FinishBlockers(rs); len(blockers) > 0 {
			return apperrors.NewConflictError("Reconciliation cannot be finished: " + strings.Join(blockers, "; "))
		}
		at := s.now().UTC()
		if err := s.bankRepo.MarkReconciled(ctx, bankAccountID, at); err != nil {
			return fmt.Errorf("failed to mark account reconciled: %w", err)
		}
		account = rs.Account
		account.LastReconciled = &at
		return nil
	})
	if err != nil {
		return nil, s.logFailure(ctx, err, "Finish reconciliation failed", bankAccountID)
	}

	s.LogInfo(ctx, "Reconciliation finished", slog.String("bank_account_id", bankAccountID))
	return &account, nil
}

func (s *reconciliationService) loadSession(ctx context.Context, bankAccountID string) (reconciliation.Session, error) {
	account, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return reconciliation.Session{}, err
	}
	book, err := s.bankRepo.ListTransactions(ctx, bankAccountID, domain.SideBook)
	if err != nil {
		return reconciliation.Session{}, fmt.Errorf("failed to load book entries: %w", err)
	}
	bank, err := s.bankRepo.ListTransactions(ctx, bankAccountID, domain.SideBank)
	if err != nil {
		return reconciliation.Session{}, fmt.Errorf("failed to load statement lines: %w", err)
	}
	return reconciliation.Session{Account: *account, Book: book, Bank: bank}, nil
}

func (s *reconciliationService) withAccountLock(ctx context.Context, bankAccountID string, fn func() error) error {
	return lock.WithLock(ctx, s.locker, lock.Key("bank-account", bankAccountID), reconciliationLockTTL, fn)
}

// logFailure logs everything except the expected client errors and returns err unchanged.
func (s *reconciliationService) logFailure(ctx context.Context, err error, msg, bankAccountID string) error {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) {
		s.LogDebug(ctx, msg, slog.String("bank_account_id", bankAccountID), slog.String("reason", err.Error()))
		return err
	}
	s.LogError(ctx, err, msg, slog.String("bank_account_id", bankAccountID))
	return err
}

// changedTransactions picks both members of each pair out of the new session state.
func changedTransactions(s reconciliation.Session, pairs ...reconciliation.Pair) []domain.BankTransaction {
	byID := make(map[string]domain.BankTransaction, len(s.Book)+len(s.Bank))
	for _, t := range s.Book {
		byID[t.TransactionID] = t
	}
	for _, t := range s.Bank {
		byID[t.TransactionID] = t
	}
	out := make([]domain.BankTransaction, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, byID[p.BookID], byID[p.BankID])
	}
	return out
}
