package mapping

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:      d.BankAccountID,
		Name:               d.Name,
		AccountNumber:      d.AccountNumber,
		BankName:           d.BankName,
		Currency:           d.Currency,
		OpeningBalance:     d.OpeningBalance,
		CurrentBookBalance: d.CurrentBookBalance,
		LastReconciled:     d.LastReconciled,
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:      m.BankAccountID,
		Name:               m.Name,
		AccountNumber:      m.AccountNumber,
		BankName:           m.BankName,
		Currency:           m.Currency,
		OpeningBalance:     m.OpeningBalance,
		CurrentBookBalance: m.CurrentBookBalance,
		LastReconciled:     m.LastReconciled,
	}
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID: d.TransactionID,
		BankAccountID: d.BankAccountID,
		Side:          string(d.Side),
		TxnDate:       d.Date,
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Status:        string(d.Status),
		MatchedWith:   nullable(d.MatchedWith),
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: m.TransactionID,
		BankAccountID: m.BankAccountID,
		Side:          domain.TransactionSide(m.Side),
		Date:          m.TxnDate,
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Status:        domain.ReconciliationStatus(m.Status),
		MatchedWith:   deref(m.MatchedWith),
	}
}
