package calculation

import (
	"testing"

	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/stretchr/testify/assert"
)

// TestWithholdingCalculation pins tax, health and net pay around the thresholds
func TestWithholdingCalculation(t *testing.T) {
	calculator := NewWithholdingCalculator()

	tests := []struct {
		name           string
		fee            int64
		expectedTax    int64
		expectedHealth int64
		expectedNet    int64
		description    string
	}{
		{
			name:        "Zero fee",
			fee:         0,
			expectedNet: 0,
			description: "Nothing withheld from nothing",
		},
		{
			name:        "Small fee",
			fee:         4500,
			expectedNet: 4500,
			description: "Well below both thresholds",
		},
		{
			name:        "Just below threshold",
			fee:         19999,
			expectedNet: 19999,
			description: "Health threshold is inclusive at 20000, not 19999",
		},
		{
			name:           "Exactly at threshold",
			fee:            20000,
			expectedTax:    0,   // tax requires > 20000
			expectedHealth: 422, // health requires >= 20000
			expectedNet:    19578,
			description:    "Asymmetric boundary: health only",
		},
		{
			name:           "Just above threshold",
			fee:            20001,
			expectedTax:    2000, // 2000.1
			expectedHealth: 422,  // 422.0211
			expectedNet:    17579,
			description:    "Both deductions apply",
		},
		{
			name:           "Crossing threshold",
			fee:            25000,
			expectedTax:    2500,
			expectedHealth: 528, // 527.5 rounds up
			expectedNet:    21972,
			description:    "Reference example",
		},
		{
			name:           "Large fee",
			fee:            123456,
			expectedTax:    12346, // 12345.6
			expectedHealth: 2605,  // 2604.9216
			expectedNet:    108505,
			description:    "Rounding to whole units on both deductions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := calculator.Calculate(money.NewMoney(tt.fee))

			assert.Equal(t, money.NewMoney(tt.expectedTax).String(), w.Tax.String(), tt.description)
			assert.Equal(t, money.NewMoney(tt.expectedHealth).String(), w.Health.String(), tt.description)
			assert.Equal(t, money.NewMoney(tt.expectedNet).String(), w.NetPay.String(), tt.description)
			assert.True(t, w.NetPay.Equal(w.Gross.Sub(w.Tax).Sub(w.Health)), "net pay identity must hold")
			assert.Equal(t, tt.expectedTax > 0 || tt.expectedHealth > 0, w.ThresholdReached())
		})
	}
}

// TestWithholdingThresholdProperties sweeps both sides of the thresholds
func TestWithholdingThresholdProperties(t *testing.T) {
	calculator := NewWithholdingCalculator()

	for fee := int64(19900); fee <= 20100; fee++ {
		m := money.NewMoney(fee)
		tax := calculator.CalculateTax(m)
		health := calculator.CalculateHealth(m)

		if fee <= 20000 {
			assert.True(t, tax.IsZero(), "fee %d should owe no tax", fee)
		} else {
			assert.Equal(t, m.Mul(calculator.Constants.TaxRate).RoundUnit().String(), tax.String(), "fee %d", fee)
		}
		if fee < 20000 {
			assert.True(t, health.IsZero(), "fee %d should owe no health insurance", fee)
		} else {
			assert.True(t, health.IsPositive(), "fee %d should owe health insurance", fee)
		}
	}
}

func TestWithholdingNegativeFeeIsNotValidated(t *testing.T) {
	w := NewWithholdingCalculator().Calculate(money.NewMoney(-500))
	assert.True(t, w.Tax.IsZero())
	assert.True(t, w.Health.IsZero())
	assert.Equal(t, "-500", w.NetPay.String())
	assert.False(t, w.ThresholdReached())
}
