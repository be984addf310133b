package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type slogLogger struct {
	handler slog.Handler
	level   Level
}

// New returns a logfmt logger writing to out. Timestamps are UTC.
func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = os.Stdout
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slogLevel(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey {
				return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			if len(groups) == 0 && attr.Key == slog.LevelKey {
				return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	})
	return &slogLogger{handler: handler, level: level}
}

func Nop() Logger {
	return &slogLogger{handler: slog.NewTextHandler(io.Discard, nil), level: Error + 1}
}

func (l *slogLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return level >= l.level
}

func (l *slogLogger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	if len(fields) == 0 {
		return l
	}
	return &slogLogger{handler: l.handler.WithAttrs(attrs(fields)), level: l.level}
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields...) }

func (l *slogLogger) log(level Level, msg string, fields ...Field) {
	if l == nil || !l.Enabled(level) {
		return
	}
	record := slog.NewRecord(time.Now(), slogLevel(level), msg, 0)
	record.AddAttrs(attrs(fields)...)
	_ = l.handler.Handle(context.Background(), record)
}

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field.Key) == "" {
			continue
		}
		out = append(out, slog.Any(field.Key, field.Value))
	}
	return out
}

func slogLevel(level Level) slog.Level {
	switch level {
	case Debug:
		return slog.LevelDebug
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}
