package main

import (
	"fmt"

	"github.com/rentcalc/outsource-calculator/internal/calculation"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		revenue  string
		rentCost string
		margin   string
		preset   int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Suggest the rent cost that reaches a target margin",
		Long: "Suggest the maximum rent cost for a subletting revenue at a target margin.\n" +
			"With --rent-cost, report the margin that cost implies instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := money.ParseAmount(revenue); !ok {
				return fmt.Errorf("--revenue must be a number, got %q", revenue)
			}
			target, err := decimal.NewFromString(margin)
			if err != nil {
				return fmt.Errorf("--margin must be a number, got %q", margin)
			}
			if cmd.Flags().Changed("preset") {
				if target, err = presetMargin(preset); err != nil {
					return err
				}
			}

			s, _, err := a.newSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			s.SetTotalRevenue(revenue)
			out := cmd.OutOrStdout()

			if rentCost != "" {
				if _, ok := money.ParseAmount(rentCost); !ok {
					return fmt.Errorf("--rent-cost must be a number, got %q", rentCost)
				}
				s.SetTargetMargin(target)
				s.SetRentCost(rentCost)
				rev, _ := money.ParseAmount(revenue)
				cost, _ := money.ParseAmount(rentCost)
				implied, ok := a.engine.Solver.ImpliedMargin(rev, cost)
				if !ok {
					return fmt.Errorf("margin is undefined for revenue %s", revenue)
				}
				fmt.Fprintf(out, "Implied margin:  %s%%\n", implied.StringFixed(2))
				fmt.Fprintf(out, "Target margin:   %s%%\n", s.TargetMargin().StringFixed(1))
				return nil
			}

			if !s.SetTargetMargin(target) {
				return fmt.Errorf("revenue must be positive to suggest a cost")
			}
			cost, _ := s.SuggestedCost()
			fmt.Fprintf(out, "Target margin:   %s%%\n", s.TargetMargin().StringFixed(1))
			fmt.Fprintf(out, "Max rent cost:   %s\n", cost.Format())
			return nil
		},
	}
	cmd.Flags().StringVar(&revenue, "revenue", "", "total rent collected, VAT included")
	cmd.Flags().StringVar(&rentCost, "rent-cost", "", "rent cost to evaluate instead of solving")
	cmd.Flags().StringVar(&margin, "margin", calculation.DefaultTargetMargin.String(), "target margin in percent, clamped to 0-50")
	cmd.Flags().IntVar(&preset, "preset", 0, "use a preset target margin (15, 20 or 30)")
	_ = cmd.MarkFlagRequired("revenue")
	return cmd
}

func presetMargin(p int) (decimal.Decimal, error) {
	want := decimal.NewFromInt(int64(p))
	for _, m := range calculation.MarginPresets {
		if m.Equal(want) {
			return m, nil
		}
	}
	return decimal.Zero, fmt.Errorf("unknown preset %d (use 15, 20 or 30)", p)
}
