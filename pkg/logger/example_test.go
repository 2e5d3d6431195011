package logger_test

import (
	"errors"
	"os"

	"github.com/wonny/quickrate/pkg/config"
	"github.com/wonny/quickrate/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("Rating API started")
	log.WithField("version", "builtin-2026.10").Info("Catalog loaded")
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	log := logger.NewWithWriter(os.Stderr, "debug")

	log.WithFields(map[string]interface{}{
		"sector": "Technology",
		"label":  "Crescimento Receita",
		"tier":   "compacted",
	}).Debug("label resolved")

	err := errors.New("unknown custom evaluator")
	log.WithError(err).WithField("key", "dcf").Warn("evaluation degraded")
}
