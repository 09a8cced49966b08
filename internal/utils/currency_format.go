package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatMoney formats an amount with two decimal places, the precision used for INR ledgers.
func FormatMoney(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, 2)
}
