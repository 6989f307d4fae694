package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/vttloc/internal/processor"
)

// errRoundTrip marks a check run that found mismatches
var errRoundTrip = errors.New("round trip mismatches found")

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, processor.ActionPrepare,
		"Flatten caption files into annotated text for translation",
		"Writes <dir>/prepared/<name> next to every caption file found.")
}

func newFinalizeCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, processor.ActionFinalize,
		"Rebuild caption files from translated annotated text",
		"Writes <dir>/final/<name> next to every translated stream found.")
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return newPipelineCommand(ctx, processor.ActionCheck,
		"Verify caption files survive a prepare/finalize round trip",
		"Nothing is written; cues that change are listed and the command fails.")
}

func newPipelineCommand(ctx *commandContext, action processor.Action, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <path>",
		Short: short,
		Long:  short + ".\n\n" + long + "\n<path> is a file or a directory searched recursively.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.Context(), string(action), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			results, runErr := sess.proc.Run(cmd.Context(), action, args[0])
			out := cmd.OutOrStdout()
			if len(results) > 0 {
				if action == processor.ActionCheck {
					printCheckSummary(out, results)
				} else {
					printSummary(out, results)
				}
			}
			if runErr != nil {
				return runErr
			}

			if action == processor.ActionCheck {
				for _, r := range results {
					if len(r.Mismatches) > 0 {
						return errRoundTrip
					}
				}
			}
			return nil
		},
	}
}

func printSummary(w io.Writer, results []processor.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Source,
			r.Output,
			formatCount(r.Cues),
			formatBytes(r.Bytes),
			formatDuration(r.Duration),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Source", "Output", "Cues", "Size", "Time"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))

	// The all-caps notice is advice for the translator, not a failure
	for _, r := range results {
		if r.AllCaps {
			fmt.Fprintf(w, "Note: %s has no lowercase letters; translators may need to restore casing.\n", filepath.Base(r.Source))
		}
	}
}

func printCheckSummary(w io.Writer, results []processor.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		if len(r.Mismatches) > 0 {
			status = plural(len(r.Mismatches), "mismatch", "mismatches")
		}
		rows = append(rows, []string{r.Source, formatCount(r.Cues), status})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Source", "Cues", "Round trip"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))

	for _, r := range results {
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "%s: %s\n", r.Source, m)
		}
	}
}
