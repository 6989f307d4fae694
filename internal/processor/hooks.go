package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/vttloc/pkg/executor"
)

// runHooks runs each configured command in the output's directory with
// {file} and {source} substituted
func (p *implProcessor) runHooks(ctx context.Context, hooks [][]string, source, output string) error {
	for _, hook := range hooks {
		args := executor.Expand(hook, map[string]string{
			"file":   output,
			"source": source,
		})
		p.logger.Debug(ctx, "running hook", "command", strings.Join(args, " "))

		out, err := p.executor.ExecuteInDir(ctx, filepath.Dir(output), args[0], args[1:]...)
		if err != nil {
			return fmt.Errorf("hook %s: %w", args[0], err)
		}
		if out = strings.TrimSpace(out); out != "" {
			p.logger.Debug(ctx, "hook output", "command", args[0], "output", out)
		}
	}
	return nil
}
