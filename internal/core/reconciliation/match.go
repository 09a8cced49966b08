package reconciliation

// ManualMatch pairs the book entry bookID with the bank line bankID. When either id is
// empty, unknown or already matched, the session is returned unchanged with false.
func ManualMatch(s Session, bookID, bankID string) (Session, bool) {
	if bookID == "" || bankID == "" {
		return s, false
	}
	bi, ki := indexOf(s.Book, bookID), indexOf(s.Bank, bankID)
	if bi < 0 || ki < 0 || s.Book[bi].IsMatched() || s.Bank[ki].IsMatched() {
		return s, false
	}

	out := s.clone()
	link(&out.Book[bi], &out.Bank[ki])
	return out, true
}

// AutoMatch walks the unmatched book entries in order and pairs each with the first
// unmatched bank line whose debit and credit are both equal to its own. Matching is
// greedy: a bank line is consumed by the first book entry that claims it, and dates are
// not considered.
func AutoMatch(s Session) (Session, []Pair) {
	out := s.clone()
	pairs := []Pair{}

	for bi := range out.Book {
		book := &out.Book[bi]
		if book.IsMatched() {
			continue
		}
		for ki := range out.Bank {
			bank := &out.Bank[ki]
			if bank.IsMatched() {
				continue
			}
			if book.Debit.Equal(bank.Debit) && book.Credit.Equal(bank.Credit) {
				link(book, bank)
				pairs = append(pairs, Pair{BookID: book.TransactionID, BankID: bank.TransactionID})
				break
			}
		}
	}
	return out, pairs
}
