package utils

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	diagnosticsLoggerNameConstant        = "docaudit"
	diagnosticsStreamConstant            = "stderr"
	jsonEncodingConstant                 = "json"
	consoleEncodingConstant              = "console"
	unsupportedLogLevelTemplateConstant  = "%w: %s"
	unsupportedLogFormatTemplateConstant = "%w: %s"
)

// ErrUnsupportedLogLevel reports a log level name outside SupportedLogLevels.
var ErrUnsupportedLogLevel = errors.New("unsupported log level")

// ErrUnsupportedLogFormat reports a log format name outside SupportedLogFormats.
var ErrUnsupportedLogFormat = errors.New("unsupported log format")

// LogLevel names how verbose audit diagnostics are.
type LogLevel string

// Log levels accepted by --log-level.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat names how audit diagnostics are encoded.
type LogFormat string

// Log formats accepted by --log-format.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

type levelChoice struct {
	name  LogLevel
	level zapcore.Level
}

type formatChoice struct {
	name     LogFormat
	encoding string
}

var levelChoices = []levelChoice{
	{name: LogLevelDebug, level: zapcore.DebugLevel},
	{name: LogLevelInfo, level: zapcore.InfoLevel},
	{name: LogLevelWarn, level: zapcore.WarnLevel},
	{name: LogLevelError, level: zapcore.ErrorLevel},
}

var formatChoices = []formatChoice{
	{name: LogFormatStructured, encoding: jsonEncodingConstant},
	{name: LogFormatConsole, encoding: consoleEncodingConstant},
}

// SupportedLogLevels lists the accepted level names from most to least verbose.
func SupportedLogLevels() []string {
	names := make([]string, 0, len(levelChoices))
	for _, choice := range levelChoices {
		names = append(names, string(choice.name))
	}
	return names
}

// SupportedLogFormats lists the accepted format names, default first.
func SupportedLogFormats() []string {
	names := make([]string, 0, len(formatChoices))
	for _, choice := range formatChoices {
		names = append(names, string(choice.name))
	}
	return names
}

// ParseLogLevel matches a level name case-insensitively.
func ParseLogLevel(requested string) (zapcore.Level, error) {
	normalized := LogLevel(strings.ToLower(strings.TrimSpace(requested)))
	for _, choice := range levelChoices {
		if choice.name == normalized {
			return choice.level, nil
		}
	}
	return zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, ErrUnsupportedLogLevel, requested)
}

// ParseLogFormat matches a format name case-insensitively.
func ParseLogFormat(requested string) (LogFormat, error) {
	normalized := LogFormat(strings.ToLower(strings.TrimSpace(requested)))
	for _, choice := range formatChoices {
		if choice.name == normalized {
			return choice.name, nil
		}
	}
	return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, ErrUnsupportedLogFormat, requested)
}

func (format LogFormat) encoding() string {
	for _, choice := range formatChoices {
		if choice.name == format {
			return choice.encoding
		}
	}
	return jsonEncodingConstant
}

// LoggerFactory builds the docaudit diagnostics logger. Diagnostics go to
// standard error so rendered findings on standard output stay parseable.
type LoggerFactory struct{}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces the named docaudit logger for the requested level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	level, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}
	format, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(level)
	configuration.Encoding = format.encoding()
	configuration.OutputPaths = []string{diagnosticsStreamConstant}
	configuration.ErrorOutputPaths = []string{diagnosticsStreamConstant}
	configuration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == LogFormatConsole {
		// Findings are the primary output; console diagnostics stay short.
		configuration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		configuration.DisableStacktrace = true
	}

	logger, buildError := configuration.Build()
	if buildError != nil {
		return nil, buildError
	}
	return logger.Named(diagnosticsLoggerNameConstant), nil
}
