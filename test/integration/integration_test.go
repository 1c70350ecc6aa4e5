package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rentcalc/outsource-calculator/internal/config"
	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/rentcalc/outsource-calculator/internal/history"
	"github.com/rentcalc/outsource-calculator/internal/output"
	"github.com/rentcalc/outsource-calculator/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReopenAndExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := history.NewFileBackend(filepath.Join(dir, "records.json"))

	s := session.New(history.Open(ctx, backend))
	s.SetTotalRevenue("45000")
	s.SetRentCost("20000")
	s.SetOutsourceRate("10")
	s.AddAmortizationItem("Furniture", "1000")
	saved, err := s.Save(ctx, "12 Elm St")
	require.NoError(t, err)

	require.NoError(t, s.SetMode(domain.ModeManagement))
	s.SetRentAmount("30000")
	s.SetServiceFeeRate("10")
	s.SetSplitRatio("50")
	_, err = s.Save(ctx, "Harbor View")
	require.NoError(t, err)

	// a fresh process sees both records, newest first
	reopened := session.New(history.Open(ctx, backend))
	records := reopened.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Harbor View", records[0].Address)
	assert.Equal(t, saved.ID, records[1].ID)

	require.NoError(t, reopened.LoadRecord(saved.ID))
	assert.Equal(t, domain.ModeSubletting, reopened.Mode())
	result, ok := reopened.Result()
	require.True(t, ok)
	assert.Equal(t, "17357", result.Profit.String())

	report, err := output.NewReport(records[1].DisplayLabel(), reopened.Input(), result, time.Now())
	require.NoError(t, err)
	exporter := output.NewExporter(nil, filepath.Join(dir, "reports"), nil)
	for _, name := range output.AvailableFormatterNames() {
		f, err := output.ResolveFormatter(name)
		require.NoError(t, err)
		outcome, err := exporter.Export(ctx, f, report)
		require.NoError(t, err, name)
		assert.FileExists(t, outcome.Path)
	}
}

func TestConfigDrivenInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`mode: subletting
label: Corner Flat
subletting:
  rent_cost: "15000"
  total_revenue: "21000"
  outsource_rate: "100"
`), 0644))

	doc, in, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Corner Flat", doc.Label)

	s := session.New(nil)
	sub := in.(domain.SublettingInput)
	s.SetTotalRevenue(sub.TotalRevenue)
	s.SetRentCost(sub.RentCost)
	s.SetOutsourceRate(sub.OutsourceRate)
	result, ok := s.Result()
	require.True(t, ok)
	// 21000 fee crosses the threshold
	assert.True(t, result.IsTaxThresholdReached)
	assert.Equal(t, "2100", result.Tax.String())
	assert.Equal(t, "443", result.Health.String())
	assert.True(t, result.IsLoss)
}
