package calculation

import (
	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
)

// WITHHOLDING ASSUMPTIONS:
//
// 1. Income tax is withheld at 10% only when a single payment is strictly
//    greater than 20,000.
//
// 2. Second-generation health insurance (2.11%) applies when a single payment
//    is greater than or equal to 20,000. The two boundaries differ on purpose:
//    a payment of exactly 20,000 owes health insurance but no income tax.
//
// 3. Both amounts are rounded to whole currency units, halves rounding up.

// Withholding is the statutory deduction breakdown of one outsource payment
type Withholding struct {
	Gross  money.Money `json:"gross"`
	Tax    money.Money `json:"tax"`
	Health money.Money `json:"health"`
	NetPay money.Money `json:"net_pay"`
}

// ThresholdReached reports whether any deduction applied
func (w Withholding) ThresholdReached() bool {
	return w.Tax.IsPositive() || w.Health.IsPositive()
}

// WithholdingCalculator applies income tax and health insurance withholding
type WithholdingCalculator struct {
	Constants domain.TaxConstants
}

// NewWithholdingCalculator creates a calculator using the default policy constants
func NewWithholdingCalculator() *WithholdingCalculator {
	return &WithholdingCalculator{Constants: domain.DefaultTaxConstants()}
}

// CalculateTax returns the income tax withheld from fee
func (wc *WithholdingCalculator) CalculateTax(fee money.Money) money.Money {
	if !fee.GreaterThan(wc.Constants.TaxThreshold) {
		return money.Zero()
	}
	return fee.Mul(wc.Constants.TaxRate).RoundUnit()
}

// CalculateHealth returns the supplementary health insurance premium withheld from fee
func (wc *WithholdingCalculator) CalculateHealth(fee money.Money) money.Money {
	if fee.LessThan(wc.Constants.HealthThreshold) {
		return money.Zero()
	}
	return fee.Mul(wc.Constants.HealthRate).RoundUnit()
}

// Calculate computes the full withholding breakdown. Negative fees are not
// validated here; they simply fall below both thresholds.
func (wc *WithholdingCalculator) Calculate(fee money.Money) Withholding {
	tax := wc.CalculateTax(fee)
	health := wc.CalculateHealth(fee)
	return Withholding{
		Gross:  fee,
		Tax:    tax,
		Health: health,
		NetPay: fee.Sub(tax).Sub(health),
	}
}
