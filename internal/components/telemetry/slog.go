package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// SlogAPI implements API on top of a slog.Logger.
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI creates a SlogAPI, a nil logger means slog.Default().
func NewSlogAPI(logger *slog.Logger) SlogAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogAPI{logger: logger}
}

// NewTextLogger creates the logger the cli writes to stderr with, debug
// records are only emitted when verbose is set.
func NewTextLogger(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// InitSlog installs a stderr text logger as the slog default and returns an
// API that reports through it.
func InitSlog(verbose bool) SlogAPI {
	logger := NewTextLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return NewSlogAPI(logger)
}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	s.logger.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	s.logger.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	s.logger.Debug(message, remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger.Debug("count", "id", id, "n", count)
}
