package output

import (
	"bytes"
	"fmt"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
)

// ConsoleFormatter renders the payment settlement and profit analysis as plain text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	r := report.Result
	k := report.Constants

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "OUTSOURCE PAYOUT & PROFIT REPORT")
	fmt.Fprintln(&buf, "================================")
	if report.Label != "" {
		fmt.Fprintf(&buf, "Property: %s\n", report.Label)
	}
	fmt.Fprintf(&buf, "Mode: %s\n", report.Mode)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "1. PAYMENT SETTLEMENT (for the cashier)")
	row(&buf, "Agreed fee (pre-tax)", FormatCurrency(r.OutsourceFee))
	row(&buf, "(-) Income tax withheld ("+FormatRate(k.TaxRate)+")", FormatDeduction(r.Tax))
	row(&buf, "(-) Health insurance ("+FormatRate(k.HealthRate)+")", FormatDeduction(r.Health))
	fmt.Fprintln(&buf, "  ------------------------------------------------")
	row(&buf, "Amount to remit", FormatCurrency(r.NetPay))
	if r.IsTaxThresholdReached {
		fmt.Fprintf(&buf, "  Note: the payment reaches the %s threshold; income tax and health insurance are withheld.\n",
			FormatCurrency(k.TaxThreshold))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "2. PROFIT ANALYSIS (for the owner)")
	if report.Mode == domain.ModeManagement {
		row(&buf, "Service fee (incl. VAT)", FormatCurrency(r.GrossRevenue))
	} else {
		row(&buf, "Rent collected (incl. VAT)", FormatCurrency(r.GrossRevenue))
	}
	row(&buf, "Revenue (ex "+FormatRate(k.VATRate)+" VAT)", FormatCurrency(r.RealRevenue))
	if report.Mode == domain.ModeSubletting {
		row(&buf, "(-) Rent paid out", FormatDeduction(r.RentCostOnly))
		if sub, ok := report.Input.(domain.SublettingInput); ok {
			for _, item := range sub.AmortizationItems {
				label := item.Label
				if label == "" {
					label = "unnamed item"
				}
				row(&buf, "(-)   "+label, FormatDeduction(money.ParseAmountOrZero(item.Amount)))
			}
		}
		if !r.AmortizationTotal.IsZero() {
			row(&buf, "(-) Amortization total", FormatDeduction(r.AmortizationTotal))
		}
	}
	row(&buf, "(-) Outsource fee (pre-tax)", FormatDeduction(r.OutsourceFee))
	fmt.Fprintln(&buf, "  ------------------------------------------------")
	row(&buf, "Net profit", FormatCurrency(r.Profit))
	row(&buf, "Margin", FormatPercentage(r.Margin))
	if r.IsLoss {
		fmt.Fprintln(&buf, "  WARNING: this arrangement loses money.")
	} else if r.IsLowMargin {
		fmt.Fprintf(&buf, "  WARNING: margin is below %s; renegotiate or lower the outsource fee.\n",
			FormatPercentage(k.MarginWarningThreshold))
	}
	return buf.Bytes(), nil
}

func row(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-36s %14s\n", label, value)
}
