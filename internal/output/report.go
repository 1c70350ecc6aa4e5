package output

import (
	"errors"
	"time"

	"github.com/rentcalc/outsource-calculator/internal/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrIncompleteReport  = errors.New("report has no calculation result")
)

// Report is the view model every formatter renders
type Report struct {
	Label       string                    `json:"label,omitempty"`
	Mode        domain.CalculationMode    `json:"mode"`
	Input       domain.ModeInput          `json:"input"`
	Result      *domain.CalculationResult `json:"result"`
	Constants   domain.TaxConstants       `json:"constants"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// NewReport builds a report; result must be non-nil.
func NewReport(label string, in domain.ModeInput, result *domain.CalculationResult, at time.Time) (*Report, error) {
	if in == nil || result == nil {
		return nil, ErrIncompleteReport
	}
	return &Report{
		Label:       label,
		Mode:        in.Mode(),
		Input:       in,
		Result:      result,
		Constants:   domain.DefaultTaxConstants(),
		GeneratedAt: at,
	}, nil
}

// Title is the caption used for documents and share sheets
func (r *Report) Title() string {
	if r.Label == "" {
		return "Outsource payout report"
	}
	return "Outsource payout report - " + r.Label
}

func (r *Report) validate() error {
	if r == nil || r.Result == nil {
		return ErrIncompleteReport
	}
	return nil
}

// FormatReport renders report with the named formatter
func FormatReport(report *Report, format string) ([]byte, error) {
	f, err := ResolveFormatter(format)
	if err != nil {
		return nil, err
	}
	return f.Format(report)
}
