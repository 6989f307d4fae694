package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
	"github.com/nguyentantai21042004/vttloc/internal/journal"
	"github.com/nguyentantai21042004/vttloc/internal/reassemble"
)

// Finalize rebuilds a translated stream into a caption file
func (p *implProcessor) Finalize(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res := Result{Action: ActionFinalize, Source: path}
	err := p.finalize(ctx, path, &res)
	return p.finish(ctx, res, start, err)
}

// FinalizeChanged skips files whose checksum matches the last successful
// finalize of the same path
func (p *implProcessor) FinalizeChanged(ctx context.Context, path string) (Result, error) {
	sum, err := journal.Checksum(path)
	if err != nil {
		return p.finish(ctx, Result{Action: ActionFinalize, Source: path}, time.Now(), fmt.Errorf("checksum: %w", err))
	}

	last, ok, err := p.journal.LastSuccess(ctx, string(ActionFinalize), absPath(path))
	if err != nil {
		p.logger.Warn(ctx, "journal lookup failed", "file", path, "error", err)
	}
	if ok && last.Checksum == sum {
		p.logger.Debug(ctx, "unchanged since last finalize", "file", path)
		return Result{Action: ActionFinalize, Source: path, Output: last.Output, Cues: last.Cues, Skipped: true}, nil
	}
	return p.Finalize(ctx, path)
}

func (p *implProcessor) finalize(ctx context.Context, path string, res *Result) error {
	p.logger.Info(ctx, "finalizing", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	lines, err := reassemble.ReadLines(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	units := reassemble.Units(lines)
	captions, err := p.parser.ParseAll(units)
	if err != nil {
		return fmt.Errorf("parse stream: %w", err)
	}

	out := outputPath(path, p.cfg.Paths.FinalDir)
	if err := caption.WriteFile(out, captions); err != nil {
		return fmt.Errorf("write captions: %w", err)
	}
	res.Output = out
	res.Cues = len(captions)
	res.Lines = len(lines)

	return p.runHooks(ctx, p.cfg.Hooks.AfterFinalize, path, out)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
