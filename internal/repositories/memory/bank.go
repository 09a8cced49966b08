package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

func (s *Store) FindBankAccountByID(_ context.Context, bankAccountID string) (*domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[bankAccountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Bank account not found: %s", bankAccountID))
	}
	return &a, nil
}

func (s *Store) ListBankAccounts(_ context.Context) ([]domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BankAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].BankAccountID < out[j].BankAccountID
	})
	return out, nil
}

// ListTransactions orders by date, keeping insertion order for equal dates.
func (s *Store) ListTransactions(_ context.Context, bankAccountID string, side domain.TransactionSide) ([]domain.BankTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.BankTransaction{}
	for _, id := range s.txnOrder {
		t := s.transactions[id]
		if t.BankAccountID == bankAccountID && t.Side == side {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) SaveBankAccount(_ context.Context, account domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.BankAccountID]; exists {
		return apperrors.ErrDuplicate
	}
	for _, a := range s.accounts {
		if a.AccountNumber == account.AccountNumber && a.BankName == account.BankName {
			return apperrors.ErrDuplicate
		}
	}
	s.accounts[account.BankAccountID] = account
	return nil
}

func (s *Store) SaveTransactions(_ context.Context, txns []domain.BankTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range txns {
		if _, exists := s.transactions[t.TransactionID]; exists {
			return apperrors.ErrDuplicate
		}
		if _, ok := s.accounts[t.BankAccountID]; !ok {
			return fmt.Errorf("bank account %s: %w", t.BankAccountID, apperrors.ErrNotFound)
		}
	}
	for _, t := range txns {
		s.transactions[t.TransactionID] = t
		s.txnOrder = append(s.txnOrder, t.TransactionID)
	}
	return nil
}

func (s *Store) UpdateMatches(_ context.Context, txns []domain.BankTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range txns {
		if _, ok := s.transactions[t.TransactionID]; !ok {
			return fmt.Errorf("transaction %s: %w", t.TransactionID, apperrors.ErrNotFound)
		}
	}
	for _, t := range txns {
		stored := s.transactions[t.TransactionID]
		stored.Status = t.Status
		stored.MatchedWith = t.MatchedWith
		s.transactions[t.TransactionID] = stored
	}
	return nil
}

func (s *Store) MarkReconciled(_ context.Context, bankAccountID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[bankAccountID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("Bank account not found: %s", bankAccountID))
	}
	a.LastReconciled = &at
	s.accounts[bankAccountID] = a
	return nil
}
