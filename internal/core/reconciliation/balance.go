package reconciliation

import (
	"strconv"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciledBankBalance starts at the opening balance and applies every matched bank
// line: a debit reduces the balance, a credit increases it. Unmatched lines are skipped.
func ReconciledBankBalance(account domain.BankAccount, bank []domain.BankTransaction) decimal.Decimal {
	balance := account.OpeningBalance
	for _, t := range bank {
		if !t.IsMatched() {
			continue
		}
		balance = balance.Sub(t.Debit).Add(t.Credit)
	}
	return balance
}

// Difference is the book balance minus the reconciled bank balance.
func Difference(s Session) decimal.Decimal {
	return s.Account.CurrentBookBalance.Sub(ReconciledBankBalance(s.Account, s.Bank))
}

// FinishBlockers lists what keeps the session open: a non-zero difference and unmatched
// book entries. An empty result means the session may be finished.
func FinishBlockers(s Session) []string {
	var blockers []string
	if diff := Difference(s); !diff.IsZero() {
		blockers = append(blockers, "difference is "+diff.StringFixed(2))
	}
	unmatched := 0
	for _, t := range s.Book {
		if !t.IsMatched() {
			unmatched++
		}
	}
	switch {
	case unmatched == 1:
		blockers = append(blockers, "1 book entry is unmatched")
	case unmatched > 1:
		blockers = append(blockers, strconv.Itoa(unmatched)+" book entries are unmatched")
	}
	return blockers
}

// CanFinish reports whether the session may be closed: no difference and no unmatched
// book entries.
func CanFinish(s Session) bool {
	return len(FinishBlockers(s)) == 0
}

// SideTotals counts and sums one side of the session.
type SideTotals struct {
	Matched         int             `json:"matched"`
	Unmatched       int             `json:"unmatched"`
	MatchedDebit    decimal.Decimal `json:"matchedDebit"`
	MatchedCredit   decimal.Decimal `json:"matchedCredit"`
	UnmatchedDebit  decimal.Decimal `json:"unmatchedDebit"`
	UnmatchedCredit decimal.Decimal `json:"unmatchedCredit"`
}

// Summary is the read model for a reconciliation screen.
type Summary struct {
	Book                  SideTotals      `json:"book"`
	Bank                  SideTotals      `json:"bank"`
	BookBalance           decimal.Decimal `json:"bookBalance"`
	ReconciledBankBalance decimal.Decimal `json:"reconciledBankBalance"`
	Difference            decimal.Decimal `json:"difference"`
	CanFinish             bool            `json:"canFinish"`
}

// Summarize computes the totals for both sides along with the balances.
func Summarize(s Session) Summary {
	reconciled := ReconciledBankBalance(s.Account, s.Bank)
	return Summary{
		Book:                  totals(s.Book),
		Bank:                  totals(s.Bank),
		BookBalance:           s.Account.CurrentBookBalance,
		ReconciledBankBalance: reconciled,
		Difference:            s.Account.CurrentBookBalance.Sub(reconciled),
		CanFinish:             CanFinish(s),
	}
}

func totals(txns []domain.BankTransaction) SideTotals {
	st := SideTotals{
		MatchedDebit:    decimal.Zero,
		MatchedCredit:   decimal.Zero,
		UnmatchedDebit:  decimal.Zero,
		UnmatchedCredit: decimal.Zero,
	}
	for _, t := range txns {
		if t.IsMatched() {
			st.Matched++
			st.MatchedDebit = st.MatchedDebit.Add(t.Debit)
			st.MatchedCredit = st.MatchedCredit.Add(t.Credit)
		} else {
			st.Unmatched++
			st.UnmatchedDebit = st.UnmatchedDebit.Add(t.Debit)
			st.UnmatchedCredit = st.UnmatchedCredit.Add(t.Credit)
		}
	}
	return st
}
