package reconciliation

import (
	"fmt"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// ValidateTransaction checks the amounts of a single transaction.
func ValidateTransaction(t domain.BankTransaction) error {
	if t.Debit.IsNegative() {
		return apperrors.NewValidationError(fmt.Sprintf("Transaction %s has a negative debit", t.TransactionID))
	}
	if t.Credit.IsNegative() {
		return apperrors.NewValidationError(fmt.Sprintf("Transaction %s has a negative credit", t.TransactionID))
	}
	return nil
}

// Validate checks amounts on both sides and that every match is mutual: if book entry A
// points at bank line B then B points back at A and both are Matched.
func Validate(s Session) error {
	for _, t := range s.Book {
		if err := ValidateTransaction(t); err != nil {
			return err
		}
	}
	for _, t := range s.Bank {
		if err := ValidateTransaction(t); err != nil {
			return err
		}
	}

	if err := checkCounterparts(s.Book, s.Bank); err != nil {
		return err
	}
	return checkCounterparts(s.Bank, s.Book)
}

func checkCounterparts(side, other []domain.BankTransaction) error {
	for _, t := range side {
		if !t.IsMatched() {
			if t.MatchedWith != "" {
				return apperrors.NewValidationError(fmt.Sprintf("Transaction %s is unmatched but points at %s", t.TransactionID, t.MatchedWith))
			}
			continue
		}
		if t.MatchedWith == "" {
			return apperrors.NewValidationError(fmt.Sprintf("Transaction %s is matched without a counterpart", t.TransactionID))
		}
		i := indexOf(other, t.MatchedWith)
		if i < 0 {
			return apperrors.NewValidationError(fmt.Sprintf("Transaction %s is matched with unknown transaction %s", t.TransactionID, t.MatchedWith))
		}
		if !other[i].IsMatched() || other[i].MatchedWith != t.TransactionID {
			return apperrors.NewValidationError(fmt.Sprintf("Transactions %s and %s are not matched with each other", t.TransactionID, t.MatchedWith))
		}
	}
	return nil
}
