package calculation

import (
	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
)

// ModeFigures are the mode-specific quantities that feed withholding and profitability
type ModeFigures struct {
	GrossRevenue      money.Money
	OperationalCost   money.Money
	RentCostOnly      money.Money
	AmortizationTotal money.Money
	OutsourceFee      money.Money
}

// CalculateModeFigures derives revenue, cost and outsource fee for the active mode.
// ok is false when a required field does not parse as a finite number.
func CalculateModeFigures(in domain.ModeInput) (ModeFigures, bool) {
	switch v := in.(type) {
	case domain.SublettingInput:
		return calculateSubletting(v)
	case *domain.SublettingInput:
		if v == nil {
			return ModeFigures{}, false
		}
		return calculateSubletting(*v)
	case domain.ManagementInput:
		return calculateManagement(v)
	case *domain.ManagementInput:
		if v == nil {
			return ModeFigures{}, false
		}
		return calculateManagement(*v)
	default:
		return ModeFigures{}, false
	}
}

// AmortizationTotal sums item amounts; unparseable amounts count as zero
func AmortizationTotal(items []domain.AmortizationItem) money.Money {
	total := money.Zero()
	for _, item := range items {
		total = total.Add(money.ParseAmountOrZero(item.Amount))
	}
	return total
}

func calculateSubletting(in domain.SublettingInput) (ModeFigures, bool) {
	rentCost, ok1 := money.ParseAmount(in.RentCost)
	revenue, ok2 := money.ParseAmount(in.TotalRevenue)
	rate, ok3 := money.ParseAmount(in.OutsourceRate)
	if !ok1 || !ok2 || !ok3 {
		return ModeFigures{}, false
	}

	amortization := AmortizationTotal(in.AmortizationItems)
	return ModeFigures{
		GrossRevenue:      revenue,
		OperationalCost:   rentCost.Add(amortization),
		RentCostOnly:      rentCost,
		AmortizationTotal: amortization,
		OutsourceFee:      revenue.Percent(rate.Decimal).RoundUnit(),
	}, true
}

func calculateManagement(in domain.ManagementInput) (ModeFigures, bool) {
	rent, ok1 := money.ParseAmount(in.RentAmount)
	feeRate, ok2 := money.ParseAmount(in.ServiceFeeRate)
	split, ok3 := money.ParseAmount(in.SplitRatio)
	if !ok1 || !ok2 || !ok3 {
		return ModeFigures{}, false
	}

	gross := rent.Percent(feeRate.Decimal).RoundUnit()
	return ModeFigures{
		GrossRevenue:      gross,
		OperationalCost:   money.Zero(),
		RentCostOnly:      money.Zero(),
		AmortizationTotal: money.Zero(),
		OutsourceFee:      gross.Percent(split.Decimal).RoundUnit(),
	}, true
}
