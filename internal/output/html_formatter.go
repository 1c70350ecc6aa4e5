package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
)

// HTMLFormatter produces a single-page printable document with both cards.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"minus":  FormatDeduction,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"amount": money.ParseAmountOrZero,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}

	var items []domain.AmortizationItem
	if sub, ok := report.Input.(domain.SublettingInput); ok {
		items = sub.AmortizationItems
	}

	data := struct {
		*Report
		Title        string
		IsSubletting bool
		Items        []domain.AmortizationItem
		Generated    string
	}{
		Report:       report,
		Title:        report.Title(),
		IsSubletting: report.Mode == domain.ModeSubletting,
		Items:        items,
		Generated:    report.GeneratedAt.Format("2006-01-02 15:04"),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
