// Package logger provides tooling for structured logging.
// With logger, you can use context to add logging details to your call stack.
package logger

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"go.llib.dev/testcase/clock"
)

type Logger struct {
	Out io.Writer

	// Level is the minimum level of the log entries which are written to Out.
	// When empty it defaults to LevelInfo.
	Level Level

	Separator string

	MessageKey   string
	LevelKey     string
	TimestampKey string

	// MarshalFunc is used to serialise the logging message event.
	// When nil it defaults to JSON format.
	MarshalFunc func(any) ([]byte, error)

	outLock sync.Mutex
}

const (
	levelDefaultKey   = "level"
	messageDefaultKey = "message"
	timestampKey      = "timestamp"
)

func (l *Logger) Debug(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, LevelDebug, msg, ds)
}

func (l *Logger) Info(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, LevelInfo, msg, ds)
}

func (l *Logger) Warn(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, LevelWarn, msg, ds)
}

func (l *Logger) Error(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, LevelError, msg, ds)
}

func (l *Logger) Fatal(ctx context.Context, msg string, ds ...LoggingDetail) {
	l.log(ctx, LevelFatal, msg, ds)
}

type logEvent struct {
	Context   context.Context
	Level     Level
	Message   string
	Timestamp time.Time
	Details   []LoggingDetail
}

func (l *Logger) log(ctx context.Context, level Level, msg string, ds []LoggingDetail) {
	if !isLevelEnabled(l.Level, level) {
		return
	}
	_ = l.logTo(l.writer(), logEvent{
		Context:   ctx,
		Level:     level,
		Message:   msg,
		Details:   ds,
		Timestamp: clock.Now(),
	})
}

func (l *Logger) logTo(out io.Writer, event logEvent) error {
	var (
		entry   = l.toLogEntry(event)
		bs, err = l.marshalFunc()(entry)
	)
	if err != nil {
		return err
	}
	_, err = out.Write(append(bs, []byte(l.separator())...))
	return err
}

type writer struct {
	Writer io.Writer
	Locker sync.Locker
}

func (w *writer) Write(p []byte) (n int, err error) {
	w.Locker.Lock()
	defer w.Locker.Unlock()
	return w.Writer.Write(p)
}

func (l *Logger) writer() io.Writer {
	var out io.Writer = os.Stdout
	if l.Out != nil {
		out = l.Out
	}
	return &writer{
		Writer: out,
		Locker: &l.outLock,
	}
}

func (l *Logger) marshalFunc() func(any) ([]byte, error) {
	if l.MarshalFunc != nil {
		return l.MarshalFunc
	}
	return json.Marshal
}

func coalesce(key, defaultKey string) string {
	if key != "" {
		return key
	}
	return defaultKey
}

func (l *Logger) toLogEntry(event logEvent) logEntry {
	le := make(logEntry)
	le = le.Merge(getLoggingDetailsFromContext(event.Context))
	for _, ld := range event.Details {
		ld.addTo(le)
	}
	le[coalesce(l.LevelKey, levelDefaultKey)] = event.Level
	le[coalesce(l.MessageKey, messageDefaultKey)] = event.Message
	le[coalesce(l.TimestampKey, timestampKey)] = event.Timestamp.Format(time.RFC3339)
	return le
}

func (l *Logger) separator() string {
	if l.Separator != "" {
		return l.Separator
	}
	switch os.PathSeparator {
	case '\\':
		return "\r\n"
	default:
		return "\n"
	}
}
