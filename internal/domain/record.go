package domain

import (
	"fmt"
	"time"
)

// UnnamedLabel is shown for records whose label is blank
const UnnamedLabel = "unnamed property"

// SavedRecord is an immutable snapshot of a mode and its raw inputs.
// Exactly one of SubletData and MgmtData is set, matching Mode.
type SavedRecord struct {
	ID         string           `json:"id"`
	Timestamp  int64            `json:"timestamp"` // unix milliseconds
	Address    string           `json:"address"`
	Mode       CalculationMode  `json:"mode"`
	SubletData *SublettingInput `json:"subletData,omitempty"`
	MgmtData   *ManagementInput `json:"mgmtData,omitempty"`
}

// NewSavedRecord snapshots in. The input bucket is copied so later edits to
// the working state never reach the record.
func NewSavedRecord(id string, at time.Time, address string, in ModeInput) (SavedRecord, error) {
	rec := SavedRecord{
		ID:        id,
		Timestamp: at.UnixMilli(),
		Address:   address,
	}
	switch v := in.(type) {
	case SublettingInput:
		data := v.Clone()
		rec.Mode = ModeSubletting
		rec.SubletData = &data
	case *SublettingInput:
		data := v.Clone()
		rec.Mode = ModeSubletting
		rec.SubletData = &data
	case ManagementInput:
		data := v
		rec.Mode = ModeManagement
		rec.MgmtData = &data
	case *ManagementInput:
		data := *v
		rec.Mode = ModeManagement
		rec.MgmtData = &data
	default:
		return SavedRecord{}, fmt.Errorf("unsupported input type %T", in)
	}
	return rec, nil
}

// CreatedAt returns the creation instant
func (r SavedRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// DisplayLabel returns the label, or UnnamedLabel when it is empty
func (r SavedRecord) DisplayLabel() string {
	if r.Address == "" {
		return UnnamedLabel
	}
	return r.Address
}

// Input returns a copy of the stored bucket for rehydrating working state.
// Records written before itemized amortization existed load with an empty list.
func (r SavedRecord) Input() (ModeInput, error) {
	switch r.Mode {
	case ModeSubletting:
		if r.SubletData == nil {
			return nil, fmt.Errorf("record %s: subletting record has no subletData", r.ID)
		}
		return r.SubletData.Clone(), nil
	case ModeManagement:
		if r.MgmtData == nil {
			return nil, fmt.Errorf("record %s: management record has no mgmtData", r.ID)
		}
		return *r.MgmtData, nil
	default:
		return nil, fmt.Errorf("record %s: unknown mode %q", r.ID, r.Mode)
	}
}

// Summary is the one-line description used in history listings
func (r SavedRecord) Summary() string {
	switch {
	case r.Mode == ModeSubletting && r.SubletData != nil:
		return fmt.Sprintf("revenue: $%s / cost: $%s", r.SubletData.TotalRevenue, r.SubletData.RentCost)
	case r.Mode == ModeManagement && r.MgmtData != nil:
		return fmt.Sprintf("rent: $%s / service fee: %s%%", r.MgmtData.RentAmount, r.MgmtData.ServiceFeeRate)
	default:
		return ""
	}
}
