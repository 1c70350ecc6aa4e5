package output

import (
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats whole-unit money with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount money.Money) string { return amount.Format() }

// FormatDeduction formats an amount being subtracted, e.g. "-$2,500"
func FormatDeduction(amount money.Money) string { return "-" + amount.Format() }

// FormatPercentage formats a percent value with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// FormatRate formats a fractional rate as a percentage without padding, e.g. 0.0211 -> "2.11%".
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimal.NewFromInt(100)).String() + "%" }
