package commands

import (
	"fmt"
	"io"

	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/evaluator"
	"github.com/wonny/quickrate/pkg/config"
	"github.com/wonny/quickrate/pkg/logger"
)

// session is what every offline command needs
type session struct {
	cfg       *config.Config
	log       *logger.Logger
	catalog   *catalog.Catalog
	evaluator *evaluator.Evaluator
}

// bootstrap loads config, a stderr logger and the effective catalog
func bootstrap(opts *globalOptions, stderr io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(stderr, level)

	cat, err := loadCatalog(opts, cfg)
	if err != nil {
		return nil, err
	}

	eval, err := evaluator.New(cat, log)
	if err != nil {
		return nil, fmt.Errorf("create evaluator: %w", err)
	}

	return &session{cfg: cfg, log: log, catalog: cat, evaluator: eval}, nil
}

// loadCatalog prefers --overrides over CATALOG_OVERRIDES
func loadCatalog(opts *globalOptions, cfg *config.Config) (*catalog.Catalog, error) {
	path := opts.overrides
	if path == "" {
		path = cfg.Rating.CatalogOverrides
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}
