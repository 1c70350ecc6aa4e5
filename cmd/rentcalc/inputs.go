package main

import (
	"fmt"
	"strings"

	"github.com/rentcalc/outsource-calculator/internal/config"
	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/rentcalc/outsource-calculator/internal/session"
	"github.com/spf13/pflag"
)

// inputFlags collects calculator inputs from flags or an input file
type inputFlags struct {
	mode      string
	inputFile string
	label     string

	rentCost      string
	revenue       string
	outsourceRate string
	items         []string

	rent           string
	serviceFeeRate string
	splitRatio     string
}

func (f *inputFlags) addSubletting(fs *pflag.FlagSet) {
	fs.StringVar(&f.rentCost, "rent-cost", "", "monthly rent paid to the landlord")
	fs.StringVar(&f.revenue, "revenue", "", "total rent collected from tenants, VAT included")
	fs.StringVar(&f.outsourceRate, "outsource-rate", "", "outsource fee as a percentage of revenue")
	fs.StringArrayVar(&f.items, "item", nil, "amortization item as label=amount (repeatable)")
}

func (f *inputFlags) addManagement(fs *pflag.FlagSet) {
	fs.StringVar(&f.rent, "rent", "", "monthly rent of the managed property")
	fs.StringVar(&f.serviceFeeRate, "service-fee-rate", "", "service fee as a percentage of rent")
	fs.StringVar(&f.splitRatio, "split-ratio", "", "outsourced share of the service fee in percent")
}

// addAll registers every input flag plus --mode and --input
func (f *inputFlags) addAll(fs *pflag.FlagSet) {
	fs.StringVar(&f.mode, "mode", string(domain.ModeSubletting), "calculation mode (subletting or management)")
	fs.StringVarP(&f.inputFile, "input", "i", "", "YAML input file; overrides input flags")
	f.addSubletting(fs)
	f.addManagement(fs)
}

// apply loads the inputs into s. An input file wins over flags, and its
// label is used when no --label was given.
func (f *inputFlags) apply(s *session.Session) error {
	if f.inputFile != "" {
		doc, in, err := config.NewInputParser().LoadFromFile(f.inputFile)
		if err != nil {
			return err
		}
		if f.label == "" {
			f.label = doc.Label
		}
		return loadInput(s, in)
	}

	mode, err := domain.ParseCalculationMode(f.mode)
	if err != nil {
		return err
	}
	if err := s.SetMode(mode); err != nil {
		return err
	}
	if mode == domain.ModeManagement {
		s.SetRentAmount(f.rent)
		s.SetServiceFeeRate(f.serviceFeeRate)
		s.SetSplitRatio(f.splitRatio)
		return nil
	}

	s.SetTotalRevenue(f.revenue)
	s.SetRentCost(f.rentCost)
	s.SetOutsourceRate(f.outsourceRate)
	for _, raw := range f.items {
		label, amount, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid --item %q: want label=amount", raw)
		}
		s.AddAmortizationItem(strings.TrimSpace(label), strings.TrimSpace(amount))
	}
	return nil
}

func loadInput(s *session.Session, in domain.ModeInput) error {
	if err := s.SetMode(in.Mode()); err != nil {
		return err
	}
	switch v := in.(type) {
	case domain.SublettingInput:
		s.SetTotalRevenue(v.TotalRevenue)
		s.SetRentCost(v.RentCost)
		s.SetOutsourceRate(v.OutsourceRate)
		for _, item := range v.AmortizationItems {
			s.AddAmortizationItem(item.Label, item.Amount)
		}
	case domain.ManagementInput:
		s.SetRentAmount(v.RentAmount)
		s.SetServiceFeeRate(v.ServiceFeeRate)
		s.SetSplitRatio(v.SplitRatio)
	default:
		return fmt.Errorf("unsupported input %T", in)
	}
	return nil
}
