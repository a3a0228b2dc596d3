package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Output encodings accepted in LOG_FORMAT.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// LoggerConfig selects the level, encoding and destination of the service log.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE. An unknown
// format falls back to JSON so production logs stay machine readable.
func DefaultConfig() *LoggerConfig {
	cfg := &LoggerConfig{
		Level:      strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		Format:     parseFormat(os.Getenv("LOG_FORMAT")),
		OutputFile: strings.TrimSpace(os.Getenv("LOG_OUTPUT_FILE")),
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "stdout"
	}
	return cfg
}

func parseFormat(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatConsole, "text":
		return FormatConsole
	default:
		return FormatJSON
	}
}

// ToZapLevel maps Level onto zap's level names, accepting "warning" for
// warn. Unknown names log at info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	name := c.Level
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (c *LoggerConfig) console() bool {
	return c.Format == FormatConsole
}
