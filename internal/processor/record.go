package processor

import (
	"context"
	"os"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/journal"
)

// finish stamps timing and size, records the outcome in the journal and
// wraps failures in a FileError
func (p *implProcessor) finish(ctx context.Context, res Result, start time.Time, err error) (Result, error) {
	res.Duration = time.Since(start)
	if res.Output != "" {
		if info, statErr := os.Stat(res.Output); statErr == nil {
			res.Bytes = info.Size()
		}
	}

	entry := journal.Entry{
		RunID:  p.runID,
		Action: string(res.Action),
		Source: absPath(res.Source),
		Output: res.Output,
		Cues:   res.Cues,
		Bytes:  res.Bytes,
		Status: journal.StatusOK,
	}
	if sum, sumErr := journal.Checksum(res.Source); sumErr == nil {
		entry.Checksum = sum
	}

	if err != nil {
		entry.Status = journal.StatusFailed
		entry.Error = err.Error()
		p.record(ctx, entry)
		p.logger.Error(ctx, "file failed", "action", res.Action, "file", res.Source, "error", err)
		return res, &FileError{Action: res.Action, Path: res.Source, Err: err}
	}

	p.record(ctx, entry)
	p.logger.Info(ctx, "file done",
		"action", res.Action,
		"file", res.Source,
		"output", res.Output,
		"cues", res.Cues,
		"duration", res.Duration,
	)
	return res, nil
}

// record never fails the pipeline; a broken journal only costs history
func (p *implProcessor) record(ctx context.Context, e journal.Entry) {
	if err := p.journal.Record(ctx, e); err != nil {
		p.logger.Warn(ctx, "journal write failed", "file", e.Source, "error", err)
	}
}
