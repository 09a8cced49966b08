package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedBalance(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		balanceType domain.BalanceType
		want        decimal.Decimal
	}{
		{"debit is positive", decimal.NewFromInt(100), domain.BalanceDr, decimal.NewFromInt(100)},
		{"credit is negative", decimal.NewFromInt(100), domain.BalanceCr, decimal.NewFromInt(-100)},
		{"empty polarity is debit", decimal.NewFromInt(5), "", decimal.NewFromInt(5)},
		{"zero credit", decimal.Zero, domain.BalanceCr, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(SignedBalance(tt.amount, tt.balanceType)))
		})
	}
}

func TestSplitSignedBalance(t *testing.T) {
	amount, bt := SplitSignedBalance(decimal.NewFromInt(-20))
	assert.True(t, decimal.NewFromInt(20).Equal(amount))
	assert.Equal(t, domain.BalanceCr, bt)

	amount, bt = SplitSignedBalance(decimal.NewFromInt(130))
	assert.True(t, decimal.NewFromInt(130).Equal(amount))
	assert.Equal(t, domain.BalanceDr, bt)

	amount, bt = SplitSignedBalance(decimal.Zero)
	assert.True(t, amount.IsZero())
	assert.Equal(t, domain.BalanceDr, bt)
}

func TestValidateOpeningBalance(t *testing.T) {
	assert.NoError(t, ValidateOpeningBalance(decimal.NewFromInt(10), domain.BalanceDr))
	assert.Error(t, ValidateOpeningBalance(decimal.NewFromInt(-1), domain.BalanceDr))
	assert.Error(t, ValidateOpeningBalance(decimal.NewFromInt(1), "XX"))
}
