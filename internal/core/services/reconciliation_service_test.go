package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/core/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/platform/lock"
	"github.com/SscSPs/ledger_recon_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	locker  lock.Locker
	service portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.locker = lock.NewLocalLocker()
	suite.service = services.NewReconciliationService(suite.store,
		services.WithReconciliationLocker(suite.locker),
		services.WithReconciliationIDs(sequence("acct")),
		services.WithReconciliationClock(func() time.Time { return fixedNow }),
		services.WithReconciliationPermissions(services.NewPermissionService(nil)),
	)

	// Book balance 1500 is opening 1000 plus the 700 credit less the 200 debit.
	suite.Require().NoError(suite.store.SaveBankAccount(suite.ctx, domain.BankAccount{
		BankAccountID: "B1", Name: "Current", AccountNumber: "001", BankName: "HDFC", Currency: "INR",
		OpeningBalance: dec(1000), CurrentBookBalance: dec(1500),
	}))
	suite.Require().NoError(suite.store.SaveTransactions(suite.ctx, []domain.BankTransaction{
		suite.txn("K1", domain.SideBook, 0, 700, 1),
		suite.txn("K2", domain.SideBook, 200, 0, 2),
		suite.txn("T1", domain.SideBank, 0, 700, 1),
		suite.txn("T2", domain.SideBank, 200, 0, 3),
	}))
}

func (suite *ReconciliationServiceTestSuite) txn(id string, side domain.TransactionSide, debit, credit int64, day int) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: id,
		BankAccountID: "B1",
		Side:          side,
		Date:          time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Description:   id,
		Debit:         dec(debit),
		Credit:        dec(credit),
		Status:        domain.StatusUnmatched,
	}
}

func (suite *ReconciliationServiceTestSuite) TestGetSession() {
	res, err := suite.service.GetSession(suite.ctx, viewer, "B1")
	suite.Require().NoError(err)
	suite.Len(res.Book, 2)
	suite.Len(res.Bank, 2)
	suite.Equal(2, res.Summary.Bank.Unmatched)
	suite.True(dec(1000).Equal(res.Summary.ReconciledBankBalance))
	suite.True(dec(500).Equal(res.Summary.Difference))
	suite.False(res.Summary.CanFinish)

	_, err = suite.service.GetSession(suite.ctx, viewer, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_Persists() {
	res, err := suite.service.ManualMatch(suite.ctx, accountant, "B1", dto.ManualMatchRequest{BookID: "K1", BankID: "T1"})
	suite.Require().NoError(err)
	suite.True(res.Matched)
	suite.Equal(1, res.Session.Summary.Book.Matched)

	book, err := suite.store.ListTransactions(suite.ctx, "B1", domain.SideBook)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusMatched, book[0].Status)
	suite.Equal("T1", book[0].MatchedWith)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_InvalidSelectionIsNoOp() {
	_, err := suite.service.ManualMatch(suite.ctx, accountant, "B1", dto.ManualMatchRequest{BookID: "K1", BankID: "T1"})
	suite.Require().NoError(err)

	for _, req := range []dto.ManualMatchRequest{
		{BookID: "K1", BankID: "T2"},    // book entry already matched
		{BookID: "ghost", BankID: "T2"}, // unknown id
		{BookID: "K2", BankID: ""},      // nothing selected
	} {
		res, err := suite.service.ManualMatch(suite.ctx, accountant, "B1", req)
		suite.Require().NoError(err)
		suite.False(res.Matched)
	}

	bank, err := suite.store.ListTransactions(suite.ctx, "B1", domain.SideBank)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnmatched, bank[1].Status)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatchThenFinish() {
	res, err := suite.service.AutoMatch(suite.ctx, accountant, "B1")
	suite.Require().NoError(err)
	suite.Len(res.Pairs, 2)
	suite.True(res.Session.Summary.CanFinish)

	_, err = suite.service.FinishReconciliation(suite.ctx, accountant, "B1")
	suite.ErrorIs(err, apperrors.ErrForbidden, "accountants cannot finish")

	account, err := suite.service.FinishReconciliation(suite.ctx, admin, "B1")
	suite.Require().NoError(err)
	suite.Require().NotNil(account.LastReconciled)
	suite.Equal(fixedNow, *account.LastReconciled)

	stored, err := suite.store.FindBankAccountByID(suite.ctx, "B1")
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.LastReconciled)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_NothingToPair() {
	_, err := suite.service.AutoMatch(suite.ctx, accountant, "B1")
	suite.Require().NoError(err)

	res, err := suite.service.AutoMatch(suite.ctx, accountant, "B1")
	suite.Require().NoError(err)
	suite.NotNil(res.Pairs)
	suite.Empty(res.Pairs)
}

func (suite *ReconciliationServiceTestSuite) TestFinish_RefusedWhileUnmatched() {
	_, err := suite.service.FinishReconciliation(suite.ctx, admin, "B1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.EqualError(err, "Reconciliation cannot be finished: difference is 500.00; 2 book entries are unmatched")

	stored, err := suite.store.FindBankAccountByID(suite.ctx, "B1")
	suite.Require().NoError(err)
	suite.Nil(stored.LastReconciled)
}

func (suite *ReconciliationServiceTestSuite) TestMutationsRespectAccountLock() {
	held, err := suite.locker.Obtain(suite.ctx, lock.Key("bank-account", "B1"), time.Minute)
	suite.Require().NoError(err)
	defer held.Release(suite.ctx)

	_, err = suite.service.AutoMatch(suite.ctx, accountant, "B1")
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.GetSession(suite.ctx, viewer, "B1")
	suite.NoError(err, "reads do not take the lock")
}

func (suite *ReconciliationServiceTestSuite) TestBankAccounts() {
	created, err := suite.service.CreateBankAccount(suite.ctx, accountant, dto.CreateBankAccountRequest{
		Name: " Savings ", AccountNumber: "002", BankName: "SBI", Currency: "inr", OpeningBalance: dec(10),
	})
	suite.Require().NoError(err)
	suite.Equal("acct-1", created.BankAccountID)
	suite.Equal("Savings", created.Name)
	suite.Equal("INR", created.Currency)

	_, err = suite.service.CreateBankAccount(suite.ctx, accountant, dto.CreateBankAccountRequest{
		Name: "Dup", AccountNumber: "002", BankName: "SBI", Currency: "INR",
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	accounts, err := suite.service.ListBankAccounts(suite.ctx, viewer)
	suite.Require().NoError(err)
	suite.Len(accounts, 2)
	suite.Equal("Current", accounts[0].Name)

	_, err = suite.service.CreateBankAccount(suite.ctx, viewer, dto.CreateBankAccountRequest{Name: "x"})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
