package main

import (
	"errors"
	"time"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/rentcalc/outsource-calculator/internal/output"
	"github.com/rentcalc/outsource-calculator/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errIncompleteInput = errors.New("input is incomplete: every required field must be a number")

func newComputeCmd(a *app) *cobra.Command {
	var (
		flags  inputFlags
		format string
	)
	run := func(mode domain.CalculationMode) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if mode != "" {
				flags.mode = string(mode)
			}
			s, _, err := a.newSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			if err := flags.apply(s); err != nil {
				return err
			}
			return a.render(cmd, s, flags.label, format)
		}
	}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the payout and profit for an input file",
		Args:  cobra.NoArgs,
		RunE:  run(""),
	}
	cmd.PersistentFlags().StringVarP(&format, "format", "f", "console", "output format (console, csv, html, json)")
	cmd.PersistentFlags().StringVar(&flags.label, "label", "", "property label shown on the report")
	cmd.Flags().StringVarP(&flags.inputFile, "input", "i", "", "YAML input file")
	_ = cmd.MarkFlagRequired("input")

	sub := &cobra.Command{
		Use:   "subletting",
		Short: "Subletting: rent collected against rent and amortization paid",
		Args:  cobra.NoArgs,
		RunE:  run(domain.ModeSubletting),
	}
	flags.addSubletting(sub.Flags())

	mgmt := &cobra.Command{
		Use:   "management",
		Short: "Property management: service fee split with the outsourced manager",
		Args:  cobra.NoArgs,
		RunE:  run(domain.ModeManagement),
	}
	flags.addManagement(mgmt.Flags())

	cmd.AddCommand(sub, mgmt)
	return cmd
}

// render writes the session's current result in format
func (a *app) render(cmd *cobra.Command, s *session.Session, label, format string) error {
	report, err := a.report(s, label)
	if err != nil {
		return err
	}
	data, err := output.FormatReport(report, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) report(s *session.Session, label string) (*output.Report, error) {
	result, ok := s.Result()
	if !ok {
		a.logger.Debug("no result for input", zap.String("op", "report"), zap.String("mode", string(s.Mode())))
		return nil, errIncompleteInput
	}
	return output.NewReport(label, s.Input(), result, time.Now())
}
