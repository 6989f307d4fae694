package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/vttloc/internal/config"
	"github.com/nguyentantai21042004/vttloc/internal/journal"
	"github.com/nguyentantai21042004/vttloc/internal/logger"
	"github.com/nguyentantai21042004/vttloc/internal/processor"
	"github.com/nguyentantai21042004/vttloc/pkg/executor"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}

		cfg := config.Default()
		if path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				c.configErr = err
				return
			}
			cfg = loaded
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// session bundles what a pipeline command needs. close releases it in
// reverse order of acquisition.
type session struct {
	cfg     *config.Config
	log     logger.Logger
	store   *journal.Store
	proc    processor.Processor
	closers []func() error
}

func (r *session) close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openSession sets up logging, takes the run lock and opens the journal
func (c *commandContext) openSession(ctx context.Context, name string, console io.Writer) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Console: console,
	}
	if cfg.Logging.File {
		opts.FilePath = filepath.Join(cfg.Paths.LogDir, name+".jsonl")
	}
	log, closeLog, err := logger.New(opts)
	if err != nil {
		return nil, err
	}
	rt := &session{cfg: cfg, log: log, closers: []func() error{closeLog}}

	release, err := journal.Lock(cfg.Paths.StateDir)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.closers = append(rt.closers, release)

	store, err := journal.Open(ctx, filepath.Join(cfg.Paths.StateDir, "journal.db"))
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.closers = append(rt.closers, store.Close)
	rt.store = store

	rt.proc = processor.New(cfg, executor.New(), log, store)
	return rt, nil
}
