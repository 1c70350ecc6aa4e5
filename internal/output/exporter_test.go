package output

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSharer struct {
	err  error
	got  []File
	wait chan struct{}
	hold chan struct{}
}

func (s *stubSharer) Share(ctx context.Context, f File) error {
	if s.wait != nil {
		close(s.wait)
		<-s.hold
	}
	s.got = append(s.got, f)
	return s.err
}

func fixedNow() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

func newTestExporter(sharer Sharer, dir string) *Exporter {
	e := NewExporter(sharer, dir, nil)
	e.Now = fixedNow
	return e
}

func TestExportShares(t *testing.T) {
	sharer := &stubSharer{}
	e := newTestExporter(sharer, t.TempDir())

	out, err := e.Export(context.Background(), ConsoleFormatter{}, buildSublettingReport(t))
	require.NoError(t, err)
	assert.True(t, out.Shared)
	require.Len(t, sharer.got, 1)

	f := sharer.got[0]
	assert.Equal(t, "payout_report_20261014_120000.txt", f.Name)
	assert.Equal(t, "Outsource payout report - Main St", f.Title)
	assert.Equal(t, "Net remittance $4,500, profit $17,357 (40.5%)", f.Text)
	assert.Contains(t, string(f.Data), "PAYMENT SETTLEMENT")
	assert.False(t, e.Busy())
}

func TestExportCanceledIsSilent(t *testing.T) {
	for _, cancelErr := range []error{ErrShareCanceled, context.Canceled} {
		dir := t.TempDir()
		e := newTestExporter(&stubSharer{err: cancelErr}, dir)

		out, err := e.Export(context.Background(), HTMLFormatter{}, buildSublettingReport(t))
		require.NoError(t, err)
		assert.True(t, out.Canceled)
		assert.Empty(t, out.Path)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "a canceled share must not leave a file behind")
	}
}

func TestExportFallsBackToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	e := newTestExporter(&stubSharer{err: ErrShareUnavailable}, dir)

	out, err := e.Export(context.Background(), HTMLFormatter{}, buildSublettingReport(t))
	require.NoError(t, err)
	assert.False(t, out.Shared)
	assert.Equal(t, filepath.Join(dir, "payout_report_20261014_120000.html"), out.Path)
	assert.Contains(t, out.Instructions, out.Path)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestExportWithoutSharerSavesFile(t *testing.T) {
	dir := t.TempDir()
	e := newTestExporter(nil, dir)

	out, err := e.Export(context.Background(), CSVFormatter{}, buildThresholdReport(t))
	require.NoError(t, err)
	assert.FileExists(t, out.Path)
}

func TestExportShareFailure(t *testing.T) {
	boom := errors.New("boom")
	e := newTestExporter(&stubSharer{err: boom}, t.TempDir())

	_, err := e.Export(context.Background(), JSONFormatter{}, buildSublettingReport(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, e.Busy())
}

func TestExportFormatFailure(t *testing.T) {
	sharer := &stubSharer{}
	e := newTestExporter(sharer, t.TempDir())
	broken := FormatterFunc{ID: "broken", F: func(*Report) ([]byte, error) { return nil, errors.New("render failed") }}

	_, err := e.Export(context.Background(), broken, buildSublettingReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate broken report")
	assert.Empty(t, sharer.got)
}

func TestExportRejectsConcurrentExport(t *testing.T) {
	sharer := &stubSharer{wait: make(chan struct{}), hold: make(chan struct{})}
	e := newTestExporter(sharer, t.TempDir())
	report := buildSublettingReport(t)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), ConsoleFormatter{}, report)
		done <- err
	}()
	<-sharer.wait
	assert.True(t, e.Busy())

	_, err := e.Export(context.Background(), ConsoleFormatter{}, report)
	assert.ErrorIs(t, err, ErrBusy)

	close(sharer.hold)
	require.NoError(t, <-done)
	assert.False(t, e.Busy())
}

func TestWriterSharer(t *testing.T) {
	var buf bytes.Buffer
	ws := WriterSharer{W: &buf}
	require.NoError(t, ws.Share(context.Background(), File{Data: []byte("report")}))
	assert.Equal(t, "report", buf.String())

	assert.ErrorIs(t, WriterSharer{}.Share(context.Background(), File{}), ErrShareUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ws.Share(ctx, File{Data: []byte("x")}), context.Canceled)
}
