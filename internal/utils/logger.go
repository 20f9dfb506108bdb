package utils

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger initializes the global logger.
// Logs go to stdout and a rotating app.log. Environment overrides:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, text (default: json)
//   - LOG_DIR: directory for log files (default: /app/logs in Docker, ./logs locally)
func InitLogger(level, format string) {
	logLevel := zerolog.InfoLevel
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		// /app exists in the container image, fall back to ./logs locally
		if _, err := os.Stat("/app"); err == nil {
			logDir = "/app/logs"
		} else {
			logDir = "./logs"
		}
	}

	var out io.Writer = os.Stdout
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Error().Err(err).Str("dir", logDir).Msg("Failed to create log directory, using stdout only")
	} else {
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "app.log"),
			MaxSize:    100, // MB per file
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	if format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}

	log.Info().
		Str("level", logLevel.String()).
		Str("format", format).
		Str("log_dir", logDir).
		Msg("Logger initialized")
}
