package session

import (
	"github.com/rentcalc/outsource-calculator/internal/calculation"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// The budget assistant couples a target margin control to the subletting
// rent cost, which it treats as the single variable cost. Moving the target
// rewrites the rent cost; editing revenue or rent cost moves the target only
// when the implied margin leaves the hysteresis band.

// TargetMargin returns the displayed target margin in percent
func (s *Session) TargetMargin() decimal.Decimal { return s.targetMargin }

// SetTargetMargin clamps target to the control range, stores it, and when
// revenue is positive rewrites the rent cost with the suggested cost. The
// bool reports whether the cost was rewritten.
func (s *Session) SetTargetMargin(target decimal.Decimal) bool {
	s.targetMargin = calculation.ClampTargetMargin(target)

	revenue, ok := money.ParseAmount(s.sublet.TotalRevenue)
	if !ok {
		return false
	}
	cost, ok := s.engine.Solver.SuggestCost(revenue, s.targetMargin)
	if !ok {
		return false
	}
	s.sublet.RentCost = cost.String()
	s.reconcile()
	return true
}

// ApplyPreset selects one of calculation.MarginPresets by value
func (s *Session) ApplyPreset(preset decimal.Decimal) bool {
	return s.SetTargetMargin(preset)
}

// SuggestedCost previews the cost for the current target without applying it
func (s *Session) SuggestedCost() (money.Money, bool) {
	revenue, ok := money.ParseAmount(s.sublet.TotalRevenue)
	if !ok {
		return money.Zero(), false
	}
	return s.engine.Solver.SuggestCost(revenue, s.targetMargin)
}

func (s *Session) reconcile() {
	revenue, ok1 := money.ParseAmount(s.sublet.TotalRevenue)
	cost, ok2 := money.ParseAmount(s.sublet.RentCost)
	if !ok1 || !ok2 {
		return
	}
	if next, changed := s.engine.Solver.Reconcile(revenue, cost, s.targetMargin); changed {
		s.targetMargin = next
	}
}
