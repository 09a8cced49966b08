// Package reconciliation pairs book entries with bank-statement lines and computes the
// reconciled bank balance. Functions take a Session by value and return a new one; the
// transaction slices of the caller are never written to.
package reconciliation

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// Session is the working state for one bank account: its book entries and its
// statement lines, both in display order.
type Session struct {
	Account domain.BankAccount       `json:"account"`
	Book    []domain.BankTransaction `json:"book"`
	Bank    []domain.BankTransaction `json:"bank"`
}

// Pair is one book entry matched to one bank line.
type Pair struct {
	BookID string `json:"bookID"`
	BankID string `json:"bankID"`
}

// clone copies both transaction lists so the result can be modified freely.
func (s Session) clone() Session {
	out := Session{Account: s.Account}
	out.Book = append(make([]domain.BankTransaction, 0, len(s.Book)), s.Book...)
	out.Bank = append(make([]domain.BankTransaction, 0, len(s.Bank)), s.Bank...)
	return out
}

func indexOf(txns []domain.BankTransaction, id string) int {
	for i := range txns {
		if txns[i].TransactionID == id {
			return i
		}
	}
	return -1
}

func link(book, bank *domain.BankTransaction) {
	book.Status = domain.StatusMatched
	book.MatchedWith = bank.TransactionID
	bank.Status = domain.StatusMatched
	bank.MatchedWith = book.TransactionID
}
