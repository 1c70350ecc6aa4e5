package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes a header row and one data row with every derived figure.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Label", "Mode", "GrossRevenue", "RealRevenue", "OperationalCost", "RentCostOnly",
	"AmortizationTotal", "OutsourceFee", "Tax", "Health", "NetPay", "Profit", "Margin",
	"TaxThresholdReached", "LowMargin", "Loss",
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	r := report.Result

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	row := []string{
		report.Label,
		string(report.Mode),
		r.GrossRevenue.String(),
		r.RealRevenue.String(),
		r.OperationalCost.String(),
		r.RentCostOnly.String(),
		r.AmortizationTotal.String(),
		r.OutsourceFee.String(),
		r.Tax.String(),
		r.Health.String(),
		r.NetPay.String(),
		r.Profit.String(),
		r.MarginDisplay(),
		strconv.FormatBool(r.IsTaxThresholdReached),
		strconv.FormatBool(r.IsLowMargin),
		strconv.FormatBool(r.IsLoss),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
