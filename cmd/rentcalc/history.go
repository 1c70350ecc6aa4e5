package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"records"},
		Short:   "Manage saved calculations",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistorySaveCmd(a),
		newHistoryShowCmd(a),
		newHistoryDeleteCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved records, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := a.newSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			records := s.Records()
			if len(records) == 0 {
				fmt.Fprintln(out, "No saved records.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%-15s %s  %-10s %-24s %s\n",
					r.ID, r.CreatedAt().Format("2006-01-02 15:04"), r.Mode, r.DisplayLabel(), r.Summary())
			}
			return nil
		},
	}
}

func newHistorySaveCmd(a *app) *cobra.Command {
	var flags inputFlags
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the given inputs under a property label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := a.newSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := flags.apply(s); err != nil {
				return err
			}
			record, err := s.Save(cmd.Context(), flags.label)
			if err != nil {
				return err
			}
			a.logger.Info("record saved", zap.String("op", "history.save"), zap.String("id", record.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s\n", record.DisplayLabel(), record.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.label, "label", "l", "", "property label (required)")
	flags.addAll(cmd.Flags())
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"load"},
		Short:   "Recompute and print a saved record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, store, err := a.newSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			record, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if err := s.LoadRecord(record.ID); err != nil {
				return err
			}
			return a.render(cmd, s, record.DisplayLabel(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, html, json)")
	return cmd
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.newSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			confirm := func(r domain.SavedRecord) bool {
				if yes {
					return true
				}
				return promptYes(cmd.InOrStdin(), out, fmt.Sprintf("Delete %q (%s)?", r.DisplayLabel(), r.Summary()))
			}
			deleted, err := s.DeleteRecord(cmd.Context(), args[0], confirm)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(out, "Deleted %s\n", args[0])
			} else {
				fmt.Fprintln(out, "Nothing deleted.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func promptYes(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
