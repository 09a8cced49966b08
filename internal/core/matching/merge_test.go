package matching

import (
	"testing"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergePool() []domain.CustomerBalance {
	return []domain.CustomerBalance{
		{Customer: domain.Customer{CustomerID: "P", Name: "Acme Traders"}, Balance: decimal.NewFromInt(100)},
		{Customer: domain.Customer{CustomerID: "S1", Name: "Acme Trdrs"}, Balance: decimal.NewFromInt(50)},
		{Customer: domain.Customer{CustomerID: "S2", Name: "ACME"}, Balance: decimal.NewFromInt(-20)},
	}
}

func TestMergeCustomers_ConsolidatesBalances(t *testing.T) {
	e := newTestEngine()
	res, err := e.MergeCustomers("P", []string{"S1", "S2"}, mergePool(), true, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "P", res.PrimaryID)
	assert.Equal(t, []string{"S1", "S2"}, res.MergedIDs)
	assert.True(t, decimal.NewFromInt(130).Equal(res.ConsolidatedBalance), "got %s", res.ConsolidatedBalance)
	assert.Equal(t, domain.ActionMerge, res.AuditLog.Action)
	assert.Equal(t, domain.EntityCustomer, res.AuditLog.Entity)
	assert.Contains(t, res.AuditLog.Description, "Acme Trdrs, ACME")
	assert.Equal(t, "Balances consolidated. Resulting balance: 130.00", res.AuditLog.Details)
	assert.Equal(t, "user-1", res.AuditLog.User)
}

func TestMergeCustomers_IgnoresBalances(t *testing.T) {
	e := newTestEngine()
	res, err := e.MergeCustomers("P", []string{"S1", "S2"}, mergePool(), false, "user-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(res.ConsolidatedBalance))
	assert.Equal(t, "Balances ignored. Resulting balance: 100.00", res.AuditLog.Details)
}

func TestMergeCustomers_PrimaryNotFound(t *testing.T) {
	e := newTestEngine()
	_, err := e.MergeCustomers("missing", []string{"S1"}, mergePool(), true, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Primary record not found", err.Error())
}

func TestMergeCustomers_SecondaryNotFound(t *testing.T) {
	e := newTestEngine()
	_, err := e.MergeCustomers("P", []string{"S1", "ghost"}, mergePool(), true, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestMergeCustomers_ExcludesPrimaryAndDuplicates(t *testing.T) {
	e := newTestEngine()
	res, err := e.MergeCustomers("P", []string{"P", "S1", "S1"}, mergePool(), true, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, res.MergedIDs)
	assert.True(t, decimal.NewFromInt(150).Equal(res.ConsolidatedBalance))
}

func TestMergeCustomers_RequiresSecondary(t *testing.T) {
	e := newTestEngine()
	_, err := e.MergeCustomers("P", []string{"P"}, mergePool(), true, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMergeCustomers_DoesNotMutatePool(t *testing.T) {
	e := newTestEngine()
	pool := mergePool()
	_, err := e.MergeCustomers("P", []string{"S1", "S2"}, pool, true, "user-1")
	require.NoError(t, err)
	assert.Len(t, pool, 3)
	assert.True(t, decimal.NewFromInt(100).Equal(pool[0].Balance))
}
