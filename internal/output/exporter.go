package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rentcalc/outsource-calculator/internal/calculation"
)

var (
	// ErrBusy is returned while another export is in flight
	ErrBusy = errors.New("an export is already in progress")
	// ErrShareCanceled is returned by a Sharer when the user dismissed the share flow
	ErrShareCanceled = errors.New("share canceled")
	// ErrShareUnavailable is returned by a Sharer that cannot share on this platform
	ErrShareUnavailable = errors.New("sharing unavailable")
)

// File is a generated report handed to a Sharer
type File struct {
	Name        string
	ContentType string
	Title       string
	Text        string
	Data        []byte
}

// Sharer is the platform share mechanism
type Sharer interface {
	Share(ctx context.Context, f File) error
}

// WriterSharer shares by writing the file contents to W
type WriterSharer struct {
	W io.Writer
}

func (ws WriterSharer) Share(ctx context.Context, f File) error {
	if ws.W == nil {
		return ErrShareUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := ws.W.Write(f.Data)
	return err
}

// Outcome describes how an export finished
type Outcome struct {
	Shared       bool
	Canceled     bool
	Path         string
	Instructions string
}

// Exporter generates a report and hands it to a Sharer, falling back to a
// file in Dir when sharing is unavailable. One export runs at a time.
type Exporter struct {
	Sharer Sharer
	Dir    string
	Logger calculation.Logger
	Now    func() time.Time

	busy atomic.Bool
}

// NewExporter creates an exporter. sharer may be nil to always save to dir.
func NewExporter(sharer Sharer, dir string, logger calculation.Logger) *Exporter {
	return &Exporter{
		Sharer: sharer,
		Dir:    dir,
		Logger: calculation.OrNop(logger),
		Now:    time.Now,
	}
}

// Busy reports whether an export is in flight
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Export formats report with f and delivers it. A user cancellation of the
// share flow returns a Canceled outcome and no error.
func (e *Exporter) Export(ctx context.Context, f Formatter, report *Report) (Outcome, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer e.busy.Store(false)

	logger := calculation.OrNop(e.Logger)
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	at := now()

	data, err := f.Format(report)
	if err != nil {
		logger.Errorf("export %s failed: %v", f.Name(), err)
		return Outcome{}, fmt.Errorf("generate %s report: %w", f.Name(), err)
	}
	file := File{
		Name:        ReportFilename(f, at),
		ContentType: ContentType(f.Name()),
		Title:       report.Title(),
		Text:        caption(report),
		Data:        data,
	}

	if e.Sharer != nil {
		err := e.Sharer.Share(ctx, file)
		switch {
		case err == nil:
			logger.Infof("shared %s (%d bytes)", file.Name, len(file.Data))
			return Outcome{Shared: true}, nil
		case errors.Is(err, ErrShareCanceled), errors.Is(err, context.Canceled):
			logger.Debugf("share of %s canceled", file.Name)
			return Outcome{Canceled: true}, nil
		case errors.Is(err, ErrShareUnavailable):
			logger.Debugf("sharing unavailable, saving %s locally", file.Name)
		default:
			logger.Errorf("share of %s failed: %v", file.Name, err)
			return Outcome{}, fmt.Errorf("share report: %w", err)
		}
	}

	path, err := e.download(file)
	if err != nil {
		logger.Errorf("saving %s failed: %v", file.Name, err)
		return Outcome{}, err
	}
	return Outcome{
		Path:         path,
		Instructions: fmt.Sprintf("Sharing is not available here. The report was saved to %s; open or attach it from there.", path),
	}, nil
}

func (e *Exporter) download(f File) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func caption(r *Report) string {
	if r == nil || r.Result == nil {
		return ""
	}
	return fmt.Sprintf("Net remittance %s, profit %s (%s)",
		FormatCurrency(r.Result.NetPay), FormatCurrency(r.Result.Profit), FormatPercentage(r.Result.Margin))
}
