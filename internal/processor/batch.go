package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Run applies action to target. Files are processed one at a time in
// lexical order; the first failure stops the batch and is returned along
// with the results gathered so far.
func (p *implProcessor) Run(ctx context.Context, action Action, target string) ([]Result, error) {
	files, single, err := p.discover(action, target)
	if err != nil {
		p.logger.Error(ctx, "invalid path", "path", target, "error", err)
		return nil, err
	}
	p.logger.Info(ctx, "starting", "action", action, "path", target, "files", len(files))
	if len(files) == 0 {
		p.logger.Warn(ctx, "no caption files found", "path", target, "extension", p.cfg.Captions.Extension)
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := p.dispatch(ctx, action, file)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	if single && action == ActionPrepare && p.cfg.Export.Clipboard && len(results) == 1 {
		p.copyToClipboard(ctx, results[0].Output)
	}

	p.logger.Info(ctx, "done", "action", action, "files", len(results))
	return results, nil
}

func (p *implProcessor) dispatch(ctx context.Context, action Action, path string) (Result, error) {
	switch action {
	case ActionPrepare:
		return p.Prepare(ctx, path)
	case ActionFinalize:
		return p.Finalize(ctx, path)
	case ActionCheck:
		return p.Check(ctx, path)
	}
	return Result{}, fmt.Errorf("unknown action %q", action)
}

// discover resolves target into the files to process. single reports that
// target named a file rather than a directory.
func (p *implProcessor) discover(action Action, target string) (files []string, single bool, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, target, err)
	}
	if info.Mode().IsRegular() {
		return []string{target}, true, nil
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}

	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != target && p.skipDir(action, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), p.cfg.Captions.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("walk %s: %w", target, err)
	}
	return files, false, nil
}

// skipDir keeps the tool's own output out of a batch. Finalize reads the
// prepared folders, so only the final folders are skipped for it.
func (p *implProcessor) skipDir(action Action, name string) bool {
	if name == p.cfg.Paths.FinalDir {
		return true
	}
	return action != ActionFinalize && name == p.cfg.Paths.PreparedDir
}
