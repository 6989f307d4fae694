package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent prepare, finalize and check runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), "history", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			entries, err := sess.store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				status := string(e.Status)
				if e.Error != "" {
					status += ": " + e.Error
				}
				rows = append(rows, []string{
					humanize.Time(e.CreatedAt),
					e.Action,
					e.Source,
					formatCount(e.Cues),
					formatBytes(e.Bytes),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Action", "Source", "Cues", "Size", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
