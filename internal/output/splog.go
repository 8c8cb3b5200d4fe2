package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleHandler is a slog handler that writes bare messages: info and debug
// to stdout, warnings and errors to stderr. Debug is gated on the DEBUG
// environment variable.
type consoleHandler struct {
	out       io.Writer
	errOut    io.Writer
	debugMode bool
	quiet     *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	w := h.out
	if record.Level >= slog.LevelWarn {
		w = h.errOut
	}
	_, err := fmt.Fprintln(w, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// createLumberjackLogger creates a rotating file writer configured from
// KCONFGEN_LOG_* environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
		Compress:   false,
	}

	if maxSizeStr := os.Getenv("KCONFGEN_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}
	if maxBackupsStr := os.Getenv("KCONFGEN_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}
	if maxAgeStr := os.Getenv("KCONFGEN_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// Splog provides console output plus optional rotating file logging
type Splog struct {
	logger    *slog.Logger
	palette   *Palette
	logWriter io.WriteCloser
	quiet     bool
}

// NewSplog creates a console-only Splog
func NewSplog(palette *Palette) *Splog {
	splog, _ := NewSplogWithConfig(palette, "")
	return splog
}

// NewSplogWithConfig creates a Splog that additionally logs everything to a
// rotating file when logFilePath is non-empty
func NewSplogWithConfig(palette *Palette, logFilePath string) (*Splog, error) {
	if palette == nil {
		palette = NewPalette(false)
	}
	splog := &Splog{palette: palette}

	console := &consoleHandler{
		out:       os.Stdout,
		errOut:    os.Stderr,
		debugMode: os.Getenv("DEBUG") != "",
		quiet:     &splog.quiet,
	}
	handlers := []slog.Handler{console}

	if logFilePath != "" {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

// Palette returns the styles in use
func (s *Splog) Palette() *Palette {
	return s.palette
}

// SetQuiet suppresses all console output when true
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// Close releases the file log writer, if any
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}

// Banner prints a bright stage banner
func (s *Splog) Banner(format string, args ...interface{}) {
	s.logger.Info(s.palette.Banner(fmt.Sprintf(format, args...)))
}

// Info prints an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.logger.Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning with a styled prefix
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logger.Warn(s.palette.Warning("warning: ") + fmt.Sprintf(format, args...))
}

// Error prints an error with a styled prefix
func (s *Splog) Error(format string, args ...interface{}) {
	s.logger.Error(s.palette.Error("error: ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message (console output requires DEBUG)
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logger.Debug(fmt.Sprintf(format, args...))
}

// Newline prints an empty line
func (s *Splog) Newline() {
	s.logger.Info("")
}
