package main

import (
	"fmt"

	"github.com/rentcalc/outsource-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		flags    inputFlags
		recordID string
		format   string
		dir      string
		toStdout bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a payout report for the given inputs or a saved record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, store, err := a.newSession(ctx, recordID != "")
			if err != nil {
				return err
			}
			if recordID != "" {
				record, err := store.Get(recordID)
				if err != nil {
					return err
				}
				if err := s.LoadRecord(record.ID); err != nil {
					return err
				}
				if flags.label == "" {
					flags.label = record.DisplayLabel()
				}
			} else if err := flags.apply(s); err != nil {
				return err
			}

			if format == "" {
				format = a.cfg.Export.Format
			}
			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			f, err := output.ResolveFormatter(format)
			if err != nil {
				return err
			}
			report, err := a.report(s, flags.label)
			if err != nil {
				return err
			}

			var sharer output.Sharer
			if toStdout {
				sharer = output.WriterSharer{W: cmd.OutOrStdout()}
			}
			exporter := output.NewExporter(sharer, dir, a.logger.Sugar())
			outcome, err := exporter.Export(ctx, f, report)
			if err != nil {
				return err
			}
			switch {
			case outcome.Canceled:
				fmt.Fprintln(cmd.ErrOrStderr(), "Export canceled.")
			case outcome.Path != "":
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Instructions)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&recordID, "record", "", "export a saved record instead of the input flags")
	cmd.Flags().StringVarP(&flags.label, "label", "l", "", "property label shown on the report")
	cmd.Flags().StringVarP(&format, "format", "f", "", "report format (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory for saved reports (default from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the report to stdout instead of a file")
	flags.addAll(cmd.Flags())
	return cmd
}
