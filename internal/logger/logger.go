package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	// logFile is the file opened by InitLogging, closed by Close.
	logFile *os.File
)

// InitLogging writes logs to the console and, when logFilePath is set, appends
// JSON lines to that file as well. A file from an earlier call is closed.
func InitLogging(logFilePath string) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	var f *os.File
	if logFilePath != "" {
		var err error
		f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			WarnLog(context.Background(), "cannot open log file %s, logging to stderr only: %v", logFilePath, err)
			f = nil
		} else {
			out = zerolog.MultiLevelWriter(out, f)
		}
	}
	SetOutput(out)

	mu.Lock()
	prev := logFile
	logFile = f
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

// Close switches logging back to stderr and closes the log file, if any.
func Close() error {
	SetOutput(zerolog.ConsoleWriter{Out: os.Stderr})

	mu.Lock()
	f := logFile
	logFile = nil
	mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel sets the global level from its name ("debug", "info", ...).
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// WithRequestID returns a context whose log lines carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func event(ctx context.Context, level zerolog.Level) *zerolog.Event {
	mu.RLock()
	e := logger.WithLevel(level)
	mu.RUnlock()
	if id := RequestID(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.InfoLevel).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.WarnLevel).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.ErrorLevel).Msgf(format, args...)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, zerolog.DebugLevel).Msgf(format, args...)
}
