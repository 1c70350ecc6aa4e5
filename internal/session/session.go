// Package session holds the working state behind the calculator screen: one
// input bucket per mode, the budget assistant target, and the wiring to the
// record store. Every read of Result recomputes from the current inputs.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentcalc/outsource-calculator/internal/calculation"
	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/rentcalc/outsource-calculator/internal/history"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned when an amortization item id is unknown
var ErrItemNotFound = errors.New("amortization item not found")

// Session is the single-threaded state manager for one user
type Session struct {
	engine *calculation.CalculationEngine
	store  *history.Store
	newID  func() string

	mode         domain.CalculationMode
	sublet       domain.SublettingInput
	mgmt         domain.ManagementInput
	targetMargin decimal.Decimal
}

// Option configures a Session
type Option func(*Session)

// WithEngine overrides the calculation engine
func WithEngine(e *calculation.CalculationEngine) Option {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithIDGenerator overrides how amortization item ids are generated
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates a session in subletting mode with empty inputs. store may be
// nil when history is not needed.
func New(store *history.Store, opts ...Option) *Session {
	s := &Session{
		engine:       calculation.NewCalculationEngine(),
		store:        store,
		newID:        uuid.NewString,
		mode:         domain.ModeSubletting,
		sublet:       domain.SublettingInput{AmortizationItems: []domain.AmortizationItem{}},
		targetMargin: calculation.DefaultTargetMargin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the active mode
func (s *Session) Mode() domain.CalculationMode { return s.mode }

// SetMode switches modes. Each mode keeps its own inputs.
func (s *Session) SetMode(m domain.CalculationMode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown calculation mode %q", m)
	}
	s.mode = m
	return nil
}

// Input returns a copy of the active mode's bucket
func (s *Session) Input() domain.ModeInput {
	if s.mode == domain.ModeManagement {
		return s.mgmt
	}
	return s.sublet.Clone()
}

// Subletting returns a copy of the subletting bucket
func (s *Session) Subletting() domain.SublettingInput { return s.sublet.Clone() }

// Management returns a copy of the management bucket
func (s *Session) Management() domain.ManagementInput { return s.mgmt }

// Result recomputes from the active inputs. ok is false while they are incomplete.
func (s *Session) Result() (*domain.CalculationResult, bool) {
	return s.engine.Compute(s.Input())
}

// SetRentCost updates the subletting rent cost and resynchronizes the target margin
func (s *Session) SetRentCost(v string) {
	s.sublet.RentCost = v
	s.reconcile()
}

// SetTotalRevenue updates the subletting revenue and resynchronizes the target margin
func (s *Session) SetTotalRevenue(v string) {
	s.sublet.TotalRevenue = v
	s.reconcile()
}

// SetOutsourceRate updates the subletting outsource rate
func (s *Session) SetOutsourceRate(v string) { s.sublet.OutsourceRate = v }

// SetRentAmount updates the management rent
func (s *Session) SetRentAmount(v string) { s.mgmt.RentAmount = v }

// SetServiceFeeRate updates the management service fee rate
func (s *Session) SetServiceFeeRate(v string) { s.mgmt.ServiceFeeRate = v }

// SetSplitRatio updates the management split ratio
func (s *Session) SetSplitRatio(v string) { s.mgmt.SplitRatio = v }

// AddAmortizationItem appends an item and returns its generated id
func (s *Session) AddAmortizationItem(label, amount string) string {
	id := s.newID()
	s.sublet.AmortizationItems = append(s.sublet.AmortizationItems, domain.AmortizationItem{
		ID:     id,
		Label:  label,
		Amount: amount,
	})
	return id
}

// UpdateAmortizationItem edits the item with id in place
func (s *Session) UpdateAmortizationItem(id, label, amount string) error {
	for i := range s.sublet.AmortizationItems {
		if s.sublet.AmortizationItems[i].ID == id {
			s.sublet.AmortizationItems[i].Label = label
			s.sublet.AmortizationItems[i].Amount = amount
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// RemoveAmortizationItem deletes the item with id, keeping the others in order
func (s *Session) RemoveAmortizationItem(id string) bool {
	items := s.sublet.AmortizationItems
	for i := range items {
		if items[i].ID == id {
			s.sublet.AmortizationItems = append(items[:i:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// AmortizationItems returns the items in display order
func (s *Session) AmortizationItems() []domain.AmortizationItem {
	return s.sublet.Clone().AmortizationItems
}

// Save snapshots the active mode under label
func (s *Session) Save(ctx context.Context, label string) (domain.SavedRecord, error) {
	if s.store == nil {
		return domain.SavedRecord{}, errors.New("no record store configured")
	}
	return s.store.Save(ctx, label, s.Input())
}

// LoadRecord rehydrates the working state from a saved record. Only the
// record's mode bucket is replaced; the other mode keeps its inputs.
func (s *Session) LoadRecord(id string) error {
	if s.store == nil {
		return errors.New("no record store configured")
	}
	in, err := s.store.Load(id)
	if err != nil {
		return err
	}
	switch v := in.(type) {
	case domain.SublettingInput:
		for i := range v.AmortizationItems {
			if v.AmortizationItems[i].ID == "" {
				v.AmortizationItems[i].ID = s.newID()
			}
		}
		s.sublet = v
		s.mode = domain.ModeSubletting
		s.reconcile()
	case domain.ManagementInput:
		s.mgmt = v
		s.mode = domain.ModeManagement
	}
	return nil
}

// DeleteRecord removes a saved record after confirm approves it
func (s *Session) DeleteRecord(ctx context.Context, id string, confirm history.ConfirmFunc) (bool, error) {
	if s.store == nil {
		return false, errors.New("no record store configured")
	}
	return s.store.Delete(ctx, id, confirm)
}

// Records lists saved records, most recent first
func (s *Session) Records() []domain.SavedRecord {
	if s.store == nil {
		return nil
	}
	return s.store.Records()
}
