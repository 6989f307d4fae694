package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/caption"
	"github.com/nguyentantai21042004/vttloc/internal/roundtrip"
)

// Check runs the round trip in memory and reports mismatching cues. A file
// with mismatches is not an error; callers inspect Result.Mismatches.
func (p *implProcessor) Check(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	res := Result{Action: ActionCheck, Source: path}

	err := func() error {
		captions, err := caption.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read captions: %w", err)
		}
		report, err := roundtrip.Check(captions, p.flattener, p.parser)
		if err != nil {
			return err
		}
		res.Cues = report.Cues
		res.Mismatches = report.Mismatches
		for _, m := range report.Mismatches {
			p.logger.Warn(ctx, "round trip mismatch", "file", path, "cue", m.Index, "field", m.Field)
		}
		return nil
	}()

	return p.finish(ctx, res, start, err)
}
