package domain

import (
	"fmt"
	"strings"

	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TaxConstants holds the point-in-time withholding and reporting policy.
// Rates are fractions except MarginWarningThreshold, which is in percent.
type TaxConstants struct {
	VATRate                decimal.Decimal `json:"vat_rate"`
	TaxThreshold           money.Money     `json:"tax_threshold"`
	TaxRate                decimal.Decimal `json:"tax_rate"`
	HealthThreshold        money.Money     `json:"health_threshold"`
	HealthRate             decimal.Decimal `json:"health_rate"`
	MarginWarningThreshold decimal.Decimal `json:"margin_warning_threshold"`
}

var defaultTaxConstants = TaxConstants{
	VATRate:                decimal.RequireFromString("0.05"),
	TaxThreshold:           money.NewMoney(20000),
	TaxRate:                decimal.RequireFromString("0.10"),
	HealthThreshold:        money.NewMoney(20000),
	HealthRate:             decimal.RequireFromString("0.0211"),
	MarginWarningThreshold: decimal.RequireFromString("20.0"),
}

// DefaultTaxConstants returns a copy of the process-wide policy constants
func DefaultTaxConstants() TaxConstants {
	return defaultTaxConstants
}

// CalculationMode selects which business model the inputs describe
type CalculationMode string

const (
	ModeSubletting CalculationMode = "subletting"
	ModeManagement CalculationMode = "management"
)

// Valid reports whether m is a known mode
func (m CalculationMode) Valid() bool {
	return m == ModeSubletting || m == ModeManagement
}

// ParseCalculationMode converts user text into a CalculationMode
func ParseCalculationMode(s string) (CalculationMode, error) {
	m := CalculationMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown calculation mode %q (want %s or %s)", s, ModeSubletting, ModeManagement)
	}
	return m, nil
}

// ModeInput is the tagged variant over the per-mode input buckets.
// Only SublettingInput and ManagementInput implement it.
type ModeInput interface {
	Mode() CalculationMode
	isModeInput()
}

// AmortizationItem is a named ad-hoc recurring cost in subletting mode
type AmortizationItem struct {
	ID     string `yaml:"id" json:"id"`
	Label  string `yaml:"label" json:"label"`
	Amount string `yaml:"amount" json:"amount"`
}

// SublettingInput holds the raw, user-entered subletting figures.
// Amounts are kept as entered so a saved record rehydrates exactly.
type SublettingInput struct {
	RentCost          string             `yaml:"rent_cost" json:"rentCost"`
	TotalRevenue      string             `yaml:"total_revenue" json:"totalRevenue"`
	OutsourceRate     string             `yaml:"outsource_rate" json:"outsourceRate"`
	AmortizationItems []AmortizationItem `yaml:"amortization_items" json:"amortizationItems"`
}

func (SublettingInput) Mode() CalculationMode { return ModeSubletting }
func (SublettingInput) isModeInput()          {}

// Clone returns a deep copy; a nil item list becomes an empty one.
func (s SublettingInput) Clone() SublettingInput {
	out := s
	out.AmortizationItems = make([]AmortizationItem, len(s.AmortizationItems))
	copy(out.AmortizationItems, s.AmortizationItems)
	return out
}

// ManagementInput holds the raw, user-entered management figures
type ManagementInput struct {
	RentAmount     string `yaml:"rent_amount" json:"rentAmount"`
	ServiceFeeRate string `yaml:"service_fee_rate" json:"serviceFeeRate"`
	SplitRatio     string `yaml:"split_ratio" json:"splitRatio"`
}

func (ManagementInput) Mode() CalculationMode { return ModeManagement }
func (ManagementInput) isModeInput()          {}

// CalculationResult is derived from inputs on every change and never stored.
//
// Invariants:
//
//	NetPay = OutsourceFee - Tax - Health
//	Profit = RealRevenue - OperationalCost - OutsourceFee
//	Margin = Profit / RealRevenue * 100, or 0 when RealRevenue <= 0
type CalculationResult struct {
	Mode              CalculationMode `json:"mode"`
	GrossRevenue      money.Money     `json:"gross_revenue"`
	RealRevenue       money.Money     `json:"real_revenue"`
	OperationalCost   money.Money     `json:"operational_cost"`
	RentCostOnly      money.Money     `json:"rent_cost_only"`
	AmortizationTotal money.Money     `json:"amortization_total"`
	OutsourceFee      money.Money     `json:"outsource_fee"`
	Tax               money.Money     `json:"tax"`
	Health            money.Money     `json:"health"`
	NetPay            money.Money     `json:"net_pay"`
	Profit            money.Money     `json:"profit"`
	Margin            decimal.Decimal `json:"margin"`

	IsTaxThresholdReached bool `json:"is_tax_threshold_reached"`
	IsLowMargin           bool `json:"is_low_margin"`
	IsLoss                bool `json:"is_loss"`
}

// MarginDisplay renders the margin with one decimal place
func (r CalculationResult) MarginDisplay() string {
	return r.Margin.StringFixed(1)
}
