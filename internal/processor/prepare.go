package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
)

// Prepare flattens one caption file for translation
func (p *implProcessor) Prepare(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res := Result{Action: ActionPrepare, Source: path}
	err := p.prepare(ctx, path, &res)
	return p.finish(ctx, res, start, err)
}

func (p *implProcessor) prepare(ctx context.Context, path string, res *Result) error {
	p.logger.Info(ctx, "preparing", "file", path)

	captions, err := caption.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read captions: %w", err)
	}

	out := outputPath(path, p.cfg.Paths.PreparedDir)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("create prepared dir: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create prepared file: %w", err)
	}
	stats, err := p.flattener.Flatten(f, captions)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write prepared file: %w", err)
	}

	res.Output = out
	res.Cues = stats.Cues
	res.Lines = stats.Lines
	res.AllCaps = stats.AllCaps
	if stats.AllCaps {
		p.logger.Warn(ctx, "captions contain no lowercase letters", "file", path)
	}

	if p.cfg.Export.Docx {
		docxPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".docx"
		if err := p.exportDocx(ctx, out, docxPath); err != nil {
			return fmt.Errorf("export docx: %w", err)
		}
	}

	return p.runHooks(ctx, p.cfg.Hooks.AfterPrepare, path, out)
}

// outputPath places name into the sibling folder dir next to path
func outputPath(path, dir string) string {
	return filepath.Join(filepath.Dir(path), dir, filepath.Base(path))
}
