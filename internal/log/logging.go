// Package log builds the venusctl loggers: a slog.Logger for command
// diagnostics and a RawLogger that captures HID report traffic. Without a
// log file the console is split so errors land on stderr while normal
// output stays on stdout.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below debug. Besides the extra slog records it switches
// the raw HID report dump on.
const LevelTrace slog.Level = slog.LevelDebug - 4

// ParseLevel maps a --log-level value. Unknown names fall back to info so
// a stale config file cannot block startup.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// fanout duplicates records to every sink. Enabled asks each sink, so a
// verbose file handler keeps records flowing even when the console is quiet.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		_ = h.Handle(ctx, r)
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// band forwards only records inside [floor, ceil] to the wrapped handler.
// It implements the stdout/stderr console split.
type band struct {
	floor, ceil slog.Level
	h           slog.Handler
}

func (b band) inside(level slog.Level) bool {
	return level >= b.floor && level <= b.ceil
}

func (b band) Enabled(ctx context.Context, level slog.Level) bool {
	return b.inside(level) && b.h.Enabled(ctx, level)
}

func (b band) Handle(ctx context.Context, r slog.Record) error {
	if !b.inside(r.Level) {
		return nil
	}
	return b.h.Handle(ctx, r)
}

func (b band) WithAttrs(attrs []slog.Attr) slog.Handler {
	return band{floor: b.floor, ceil: b.ceil, h: b.h.WithAttrs(attrs)}
}

func (b band) WithGroup(name string) slog.Handler {
	return band{floor: b.floor, ceil: b.ceil, h: b.h.WithGroup(name)}
}

// SetupLogger builds the command logger. Without a file, records below
// error go to stdout and errors to stderr. With a file, everything goes to
// the file and the console switches to stderr so redirected output stays
// clean. The returned closers own the opened log file.
func SetupLogger(levelName, file string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(levelName)

	var sinks fanout
	if file == "" {
		sinks = append(sinks,
			band{floor: LevelTrace, ceil: slog.LevelError - 1,
				h: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})},
			band{floor: slog.LevelError, ceil: slog.Level(127),
				h: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})},
		)
		return slog.New(sinks), nil, nil
	}

	sinks = append(sinks, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: open %s: %w", file, err)
	}
	sinks = append(sinks, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return slog.New(sinks), []io.Closer{f}, nil
}
