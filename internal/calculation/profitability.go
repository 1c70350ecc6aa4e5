package calculation

import (
	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Profitability is the company-side view of one calculation
type Profitability struct {
	RealRevenue money.Money
	Profit      money.Money
	Margin      decimal.Decimal // percent
	IsLoss      bool
	IsLowMargin bool
}

// ProfitabilityAnalyzer turns revenue, cost and fee into profit and margin
type ProfitabilityAnalyzer struct {
	Constants domain.TaxConstants
}

// NewProfitabilityAnalyzer creates an analyzer using the default policy constants
func NewProfitabilityAnalyzer() *ProfitabilityAnalyzer {
	return &ProfitabilityAnalyzer{Constants: domain.DefaultTaxConstants()}
}

// RealRevenue backs VAT out of a tax-inclusive amount and rounds to whole units
func (pa *ProfitabilityAnalyzer) RealRevenue(gross money.Money) money.Money {
	return gross.Div(decimal.NewFromInt(1).Add(pa.Constants.VATRate)).RoundUnit()
}

// Analyze computes profit, margin and the warning flags
func (pa *ProfitabilityAnalyzer) Analyze(grossRevenue, operationalCost, outsourceFee money.Money) Profitability {
	realRevenue := pa.RealRevenue(grossRevenue)
	profit := realRevenue.Sub(operationalCost).Sub(outsourceFee)

	margin := decimal.Zero
	if realRevenue.IsPositive() {
		margin = profit.Decimal.Div(realRevenue.Decimal).Mul(hundred)
	}

	return Profitability{
		RealRevenue: realRevenue,
		Profit:      profit,
		Margin:      margin,
		IsLoss:      profit.IsNegative(),
		IsLowMargin: margin.LessThan(pa.Constants.MarginWarningThreshold),
	}
}
