package calculation

import (
	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	// MinTargetMargin and MaxTargetMargin bound the budget assistant control
	MinTargetMargin = decimal.Zero
	MaxTargetMargin = decimal.NewFromInt(50)

	// DefaultTargetMargin is the assistant's initial target
	DefaultTargetMargin = decimal.NewFromInt(20)

	// ReconcileBand is the hysteresis, in percentage points, below which an
	// implied margin does not move the displayed target.
	ReconcileBand = decimal.RequireFromString("0.5")

	// MarginPresets are the quick-pick targets offered next to the control
	MarginPresets = []decimal.Decimal{
		decimal.NewFromInt(15),
		decimal.NewFromInt(20),
		decimal.NewFromInt(30),
	}
)

// MarginSolver derives a single variable cost from a target margin and back
type MarginSolver struct {
	Constants domain.TaxConstants
}

// NewMarginSolver creates a solver using the default policy constants
func NewMarginSolver() *MarginSolver {
	return &MarginSolver{Constants: domain.DefaultTaxConstants()}
}

// exVAT backs VAT out without rounding
func (ms *MarginSolver) exVAT(revenue money.Money) decimal.Decimal {
	return revenue.Decimal.Div(decimal.NewFromInt(1).Add(ms.Constants.VATRate))
}

// SuggestCost returns floor(revenue / (1+VAT) * (1 - target/100)).
// ok is false when revenue is not positive. The target is not clamped here.
func (ms *MarginSolver) SuggestCost(revenue money.Money, targetMarginPercent decimal.Decimal) (money.Money, bool) {
	if !revenue.IsPositive() {
		return money.Zero(), false
	}
	keep := decimal.NewFromInt(1).Sub(targetMarginPercent.Div(hundred))
	return money.NewMoneyFromDecimal(ms.exVAT(revenue).Mul(keep)).Floor(), true
}

// ImpliedMargin is the margin, in percent, that cost leaves on revenue.
// ok is false unless revenue is positive and cost is non-negative.
func (ms *MarginSolver) ImpliedMargin(revenue, cost money.Money) (decimal.Decimal, bool) {
	if !revenue.IsPositive() || cost.IsNegative() {
		return decimal.Zero, false
	}
	realRevenue := ms.exVAT(revenue)
	return realRevenue.Sub(cost.Decimal).Div(realRevenue).Mul(hundred), true
}

// Reconcile returns the target the control should display after revenue or
// cost changed. The displayed target moves, rounded to one decimal, only when
// the implied margin differs from it by more than ReconcileBand.
func (ms *MarginSolver) Reconcile(revenue, cost money.Money, displayed decimal.Decimal) (decimal.Decimal, bool) {
	implied, ok := ms.ImpliedMargin(revenue, cost)
	if !ok {
		return displayed, false
	}
	if implied.Sub(displayed).Abs().LessThanOrEqual(ReconcileBand) {
		return displayed, false
	}
	return implied.Round(1), true
}

// ClampTargetMargin restricts a target to the assistant's allowed range
func ClampTargetMargin(target decimal.Decimal) decimal.Decimal {
	if target.LessThan(MinTargetMargin) {
		return MinTargetMargin
	}
	if target.GreaterThan(MaxTargetMargin) {
		return MaxTargetMargin
	}
	return target
}
