package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rentcalc/outsource-calculator/internal/calculation"
	"github.com/rentcalc/outsource-calculator/internal/domain"
)

var (
	ErrEmptyLabel           = errors.New("label is required")
	ErrNoResult             = errors.New("no calculation result to save")
	ErrNotFound             = errors.New("record not found")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
)

// ValidationError reports why a save was rejected. The store is unchanged.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "cannot save record: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// ConfirmFunc is asked before a record is deleted; false keeps the record.
type ConfirmFunc func(rec domain.SavedRecord) bool

// Store is the append-only list of saved calculation snapshots, most recent
// first. The whole list is rewritten to the backend on every mutation.
// It is meant to be driven from a single goroutine.
type Store struct {
	backend Backend
	engine  *calculation.CalculationEngine
	logger  calculation.Logger
	now     func() time.Time

	records []domain.SavedRecord
	lastID  int64
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l calculation.Logger) Option {
	return func(s *Store) { s.logger = calculation.OrNop(l) }
}

// WithClock overrides the time source used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEngine sets the engine used to check that inputs are complete on save
func WithEngine(e *calculation.CalculationEngine) Option {
	return func(s *Store) {
		if e != nil {
			s.engine = e
		}
	}
}

// Open reads the persisted list once. Unreadable or unparseable data yields
// an empty history; it is logged, never returned.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		engine:  calculation.NewCalculationEngine(),
		logger:  calculation.NopLogger{},
		now:     time.Now,
		records: []domain.SavedRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNoData) {
		return
	}
	if err != nil {
		s.logger.Warnf("history unavailable, starting empty: %v", err)
		return
	}

	var records []domain.SavedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warnf("history unreadable, starting empty: %v", err)
		return
	}
	if records == nil {
		records = []domain.SavedRecord{}
	}
	s.records = records
	for _, r := range records {
		if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
	s.logger.Debugf("loaded %d saved records", len(records))
}

// Records returns the saved records, most recent first
func (s *Store) Records() []domain.SavedRecord {
	out := make([]domain.SavedRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of saved records
func (s *Store) Len() int { return len(s.records) }

// Get returns the record with id
func (s *Store) Get(id string) (domain.SavedRecord, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.SavedRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save snapshots in under label. It fails with a *ValidationError when the
// label is blank or the inputs do not produce a result.
func (s *Store) Save(ctx context.Context, label string, in domain.ModeInput) (domain.SavedRecord, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.SavedRecord{}, &ValidationError{Err: ErrEmptyLabel}
	}
	if _, ok := s.engine.Compute(in); !ok {
		return domain.SavedRecord{}, &ValidationError{Err: ErrNoResult}
	}

	at := s.now()
	rec, err := domain.NewSavedRecord(s.nextID(at), at, label, in)
	if err != nil {
		return domain.SavedRecord{}, err
	}

	previous := s.records
	s.records = append([]domain.SavedRecord{rec}, s.records...)
	if err := s.persist(ctx); err != nil {
		s.records = previous
		return domain.SavedRecord{}, err
	}
	s.logger.Infof("saved record %s (%s) %q", rec.ID, rec.Mode, rec.Address)
	return rec, nil
}

// Load returns the input bucket of the record with id for rehydration
func (s *Store) Load(id string) (domain.ModeInput, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return rec.Input()
}

// Delete removes the record with id after confirm approves it. A missing id
// is a no-op. The bool reports whether a record was removed.
func (s *Store) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	if confirm == nil {
		return false, ErrConfirmationRequired
	}
	if !confirm(s.records[idx]) {
		return false, nil
	}

	previous := s.records
	next := make([]domain.SavedRecord, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	s.records = next
	if err := s.persist(ctx); err != nil {
		s.records = previous
		return false, err
	}
	s.logger.Infof("deleted record %s", id)
	return true, nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist records: %w", err)
	}
	return nil
}

// nextID derives a unique id from the clock
func (s *Store) nextID(at time.Time) string {
	id := at.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
