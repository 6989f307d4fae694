package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/vttloc/internal/config"
	"github.com/nguyentantai21042004/vttloc/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Finalize prepared files as soon as translators save them",
		Long: "Watches <dir> recursively. Whenever a caption file inside a prepared folder\n" +
			"changes and stays quiet for watch.settle_ms, it is finalized. Files whose content\n" +
			"matches their last successful finalize are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return fmt.Errorf("watch: %s is not a directory", root)
			}

			sess, err := ctx.openSession(cmd.Context(), "watch", cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			cfg := sess.cfg
			out := cmd.OutOrStdout()
			handler := func(hctx context.Context, path string) error {
				if !cfg.Watch.AutoFinalize {
					sess.log.Info(hctx, "prepared file changed", "file", path)
					return nil
				}
				res, err := sess.proc.FinalizeChanged(hctx, path)
				if err != nil {
					return err
				}
				if !res.Skipped {
					fmt.Fprintf(out, "%s  %s -> %s (%s)\n",
						time.Now().Format("15:04:05"), path, res.Output, plural(res.Cues, "cue", "cues"))
				}
				return nil
			}

			w, err := watcher.New(root, handler, sess.log, watcher.Options{
				Match:         preparedMatcher(cfg),
				Settle:        time.Duration(cfg.Watch.SettleMillis) * time.Millisecond,
				MaxConcurrent: cfg.Performance.MaxConcurrent,
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			fmt.Fprintf(out, "Watching %s for edits in %s/ folders. Press Ctrl+C to stop.\n", root, cfg.Paths.PreparedDir)
			if err := w.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// preparedMatcher selects caption files sitting directly in a prepared folder
func preparedMatcher(cfg *config.Config) func(string) bool {
	return func(path string) bool {
		if !strings.EqualFold(filepath.Ext(path), cfg.Captions.Extension) {
			return false
		}
		return filepath.Base(filepath.Dir(path)) == cfg.Paths.PreparedDir
	}
}
