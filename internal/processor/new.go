package processor

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/vttloc/internal/config"
	"github.com/nguyentantai21042004/vttloc/internal/cueparse"
	"github.com/nguyentantai21042004/vttloc/internal/flatten"
	"github.com/nguyentantai21042004/vttloc/internal/journal"
	"github.com/nguyentantai21042004/vttloc/internal/logger"
	"github.com/nguyentantai21042004/vttloc/pkg/executor"
)

type implProcessor struct {
	cfg       *config.Config
	executor  executor.Executor
	logger    logger.Logger
	journal   Journal
	flattener *flatten.Flattener
	parser    *cueparse.Parser
	runID     string
	copyText  func(string) error
}

// New creates a new Processor instance. A nil journal disables run history.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, j Journal) Processor {
	if j == nil {
		j = nopJournal{}
	}
	runID := uuid.NewString()
	return &implProcessor{
		cfg:       cfg,
		executor:  exec,
		logger:    log.With("run_id", runID),
		journal:   j,
		flattener: flatten.New(flatten.Options{SpeakerSeparator: cfg.Captions.SpeakerSeparator}),
		parser:    cueparse.New(cfg.Captions.LineLength),
		runID:     runID,
		copyText:  clipboard.WriteAll,
	}
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, journal.Entry) error { return nil }

func (nopJournal) LastSuccess(context.Context, string, string) (journal.Entry, bool, error) {
	return journal.Entry{}, false, nil
}
