package calculation

import (
	"github.com/rentcalc/outsource-calculator/internal/domain"
)

// CalculationEngine orchestrates mode figures, withholding and profitability.
// It holds no per-call state, so Compute is safe to call repeatedly.
type CalculationEngine struct {
	WithholdingCalc   *WithholdingCalculator
	ProfitabilityCalc *ProfitabilityAnalyzer
	Solver            *MarginSolver
	Logger            Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		WithholdingCalc:   NewWithholdingCalculator(),
		ProfitabilityCalc: NewProfitabilityAnalyzer(),
		Solver:            NewMarginSolver(),
		Logger:            NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = OrNop(l)
}

// Compute maps inputs to a result. ok is false while the inputs are
// incomplete; that is the idle state, not an error.
func (ce *CalculationEngine) Compute(in domain.ModeInput) (*domain.CalculationResult, bool) {
	if in == nil {
		return nil, false
	}
	figures, ok := CalculateModeFigures(in)
	if !ok {
		ce.Logger.Debugf("incomplete %T input, no result", in)
		return nil, false
	}

	withholding := ce.WithholdingCalc.Calculate(figures.OutsourceFee)
	profit := ce.ProfitabilityCalc.Analyze(figures.GrossRevenue, figures.OperationalCost, figures.OutsourceFee)

	result := &domain.CalculationResult{
		Mode:                  in.Mode(),
		GrossRevenue:          figures.GrossRevenue,
		RealRevenue:           profit.RealRevenue,
		OperationalCost:       figures.OperationalCost,
		RentCostOnly:          figures.RentCostOnly,
		AmortizationTotal:     figures.AmortizationTotal,
		OutsourceFee:          figures.OutsourceFee,
		Tax:                   withholding.Tax,
		Health:                withholding.Health,
		NetPay:                withholding.NetPay,
		Profit:                profit.Profit,
		Margin:                profit.Margin,
		IsTaxThresholdReached: withholding.ThresholdReached(),
		IsLowMargin:           profit.IsLowMargin,
		IsLoss:                profit.IsLoss,
	}
	ce.Logger.Debugf("computed %s: fee=%s net=%s profit=%s margin=%s%%",
		result.Mode, result.OutsourceFee, result.NetPay, result.Profit, result.MarginDisplay())
	return result, true
}

var defaultEngine = NewCalculationEngine()

// Compute runs the default engine
func Compute(in domain.ModeInput) (*domain.CalculationResult, bool) {
	return defaultEngine.Compute(in)
}
