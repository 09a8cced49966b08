package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance converts an amount and its Dr/Cr polarity into a signed value.
// Dr -> Positive (+), Cr -> Negative (-). An empty polarity is treated as Dr.
func SignedBalance(amount decimal.Decimal, balanceType domain.BalanceType) decimal.Decimal {
	if balanceType == domain.BalanceCr {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// SplitSignedBalance is the inverse of SignedBalance. Zero is reported as Dr.
func SplitSignedBalance(signed decimal.Decimal) (decimal.Decimal, domain.BalanceType) {
	if signed.IsNegative() {
		return signed.Abs(), domain.BalanceCr
	}
	return signed, domain.BalanceDr
}

// LedgerSignedBalance returns the signed opening balance of a ledger.
func LedgerSignedBalance(l domain.Ledger) decimal.Decimal {
	return SignedBalance(l.OpeningBalance, l.BalanceType)
}

// ValidateOpeningBalance checks the ledger invariant: the amount is never negative and the
// polarity is Dr or Cr.
func ValidateOpeningBalance(amount decimal.Decimal, balanceType domain.BalanceType) error {
	if amount.IsNegative() {
		return fmt.Errorf("opening balance must not be negative, got %s", amount.String())
	}
	switch balanceType {
	case domain.BalanceDr, domain.BalanceCr:
		return nil
	default:
		return fmt.Errorf("unknown balance type '%s'", balanceType)
	}
}
