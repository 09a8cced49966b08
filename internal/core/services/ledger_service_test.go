package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/core/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockLedgerRepository
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockRepo,
		services.WithLedgerEngine(testEngine()),
		services.WithLedgerIDs(sequence("ledger")),
		services.WithLedgerClock(func() time.Time { return fixedNow }),
		services.WithLedgerPermissions(services.NewPermissionService(nil)),
	)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_Success() {
	suite.mockRepo.On("SaveLedger", suite.ctx, mock.AnythingOfType("domain.Ledger")).Return(nil).Once()

	ledger, err := suite.service.CreateLedger(suite.ctx, accountant, dto.CreateLedgerRequest{
		Name:           " Office Rent ",
		Group:          domain.GroupIndirectExpenses,
		OpeningBalance: dec(1200),
		Contact:        &dto.ContactMetaRequest{Email: "landlord@x.test"},
	})
	suite.Require().NoError(err)
	suite.Equal("ledger-1", ledger.LedgerID)
	suite.Equal("Office Rent", ledger.Name)
	suite.Equal("OFFI-4821", ledger.Code)
	suite.Equal(domain.BalanceDr, ledger.BalanceType)
	suite.Equal("landlord@x.test", ledger.Contact().Email)
	suite.Equal(accountant.UserID, ledger.CreatedBy)
	suite.Equal(fixedNow, ledger.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_KeepsGivenCode() {
	suite.mockRepo.On("SaveLedger", suite.ctx, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.Code == "RENT-01"
	})).Return(nil).Once()

	ledger, err := suite.service.CreateLedger(suite.ctx, accountant, dto.CreateLedgerRequest{
		Name: "Rent", Code: "RENT-01", Group: domain.GroupIndirectExpenses,
	})
	suite.Require().NoError(err)
	suite.Equal("RENT-01", ledger.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_Validation() {
	cases := map[string]dto.CreateLedgerRequest{
		"blank name":       {Name: " ", Group: domain.GroupSundryDebtors},
		"unknown group":    {Name: "X", Group: "Misc"},
		"negative balance": {Name: "X", Group: domain.GroupSundryDebtors, OpeningBalance: dec(-1)},
		"bad balance type": {Name: "X", Group: domain.GroupSundryDebtors, BalanceType: "Both"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.CreateLedger(suite.ctx, accountant, req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_SaveError() {
	dbErr := errors.New("db down")
	suite.mockRepo.On("SaveLedger", suite.ctx, mock.AnythingOfType("domain.Ledger")).Return(dbErr).Once()

	_, err := suite.service.CreateLedger(suite.ctx, accountant, dto.CreateLedgerRequest{Name: "X", Group: domain.GroupSundryDebtors})
	suite.ErrorIs(err, dbErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_ViewerForbidden() {
	_, err := suite.service.CreateLedger(suite.ctx, viewer, dto.CreateLedgerRequest{Name: "X", Group: domain.GroupSundryDebtors})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestGetLedger_NotFound() {
	suite.mockRepo.On("FindLedgerByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetLedger(suite.ctx, viewer, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListLedgers() {
	ledgers := []domain.Ledger{customerLedger("L1", "Acme", 0, domain.BalanceDr, domain.ContactMeta{})}
	suite.mockRepo.On("ListLedgers", suite.ctx, 20, 0).Return(ledgers, nil).Once()

	got, err := suite.service.ListLedgers(suite.ctx, viewer, dto.ListLedgersParams{Limit: 20})
	suite.Require().NoError(err)
	suite.Equal(ledgers, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
