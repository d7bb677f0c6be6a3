package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/kingrea/casebook/internal/board"
	"github.com/kingrea/casebook/internal/config"
	"github.com/kingrea/casebook/internal/logging"
	"github.com/kingrea/casebook/internal/store"
)

// project bundles what the non-interactive commands need.
type project struct {
	cfg    *config.Config
	logger *logging.Logger
	store  *store.Fallback
	doc    *board.Document
}

// openProject loads config, diagnostics and the store for dir. The board
// falls back to the bundled sample when the configured file is missing.
func openProject(dir string) (*project, error) {
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	logger, err := logging.New(dir)
	if err != nil {
		logger = logging.NewWriter(os.Stderr)
	}
	doc, err := board.Load(cfg.BoardPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = logger.Close()
			return nil, WrapExitError(ExitCommandError, "load board", err)
		}
		doc = board.Default()
	}
	opts := cfg.StoreOptions()
	opts.Logger = logger.Base()
	return &project{
		cfg:    cfg,
		logger: logger,
		store:  store.Open(opts),
		doc:    doc,
	}, nil
}

func (p *project) Close() error {
	err := p.store.Close()
	_ = p.logger.Close()
	return err
}
