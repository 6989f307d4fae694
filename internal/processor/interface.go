package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/vttloc/internal/journal"
	"github.com/nguyentantai21042004/vttloc/internal/roundtrip"
)

// Action names one pipeline direction
type Action string

const (
	ActionPrepare  Action = "prepare"
	ActionFinalize Action = "finalize"
	ActionCheck    Action = "check"
)

// ParseAction maps a command name onto an Action
func ParseAction(name string) (Action, bool) {
	switch a := Action(name); a {
	case ActionPrepare, ActionFinalize, ActionCheck:
		return a, true
	}
	return "", false
}

// Result describes one processed file
type Result struct {
	Action  Action
	Source  string
	Output  string
	Cues    int
	Lines   int
	Bytes   int64
	AllCaps bool
	// Skipped is set when FinalizeChanged found nothing new to do
	Skipped    bool
	Mismatches []roundtrip.Mismatch
	Duration   time.Duration
}

// Processor drives the caption pipeline over files and directory trees
type Processor interface {
	// Prepare flattens a caption file into <dir>/<prepared>/<name>
	Prepare(ctx context.Context, path string) (Result, error)
	// Finalize rebuilds a translated stream into <dir>/<final>/<name>
	Finalize(ctx context.Context, path string) (Result, error)
	// FinalizeChanged finalizes path unless its content matches the last
	// successful finalize recorded in the journal
	FinalizeChanged(ctx context.Context, path string) (Result, error)
	// Check flattens and rebuilds a caption file in memory and reports
	// every cue that does not survive the round trip
	Check(ctx context.Context, path string) (Result, error)
	// Run applies action to a file, or to every caption file under a
	// directory, stopping at the first failure
	Run(ctx context.Context, action Action, target string) ([]Result, error)
}

// Journal stores run history; *journal.Store satisfies it
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
	LastSuccess(ctx context.Context, action, source string) (journal.Entry, bool, error)
}
