package app

import (
	"fmt"
	"path/filepath"

	"github.com/bnema/zerowrap"
)

// initLogger initializes the zerowrap logger. The returned cleanup closes the
// log file when file logging is enabled and is nil otherwise.
func initLogger(cfg Config) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if cfg.Logging.File.Enabled {
		log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
			Enabled:    true,
			Path:       resolveLogFilePath(cfg),
			MaxSize:    cfg.Logging.File.MaxSize,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAge,
			Compress:   true,
		})
		if err != nil {
			return zerowrap.Default(), nil, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	return zerowrap.New(logConfig), nil, nil
}

// resolveLogFilePath returns the configured log file path or a default.
func resolveLogFilePath(cfg Config) string {
	if cfg.Logging.File.Path != "" {
		return expandHome(cfg.Logging.File.Path)
	}
	return filepath.Join(DefaultStateDir(), "appops.log")
}

// resolveTranscriptDir returns the configured transcript directory or a default.
func resolveTranscriptDir(cfg Config) string {
	if cfg.Transcript.Dir != "" {
		return expandHome(cfg.Transcript.Dir)
	}
	return filepath.Join(DefaultStateDir(), "transcripts")
}
