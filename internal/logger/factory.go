// Package logger builds slog loggers for the example binaries from a small
// set of functional options.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithLevelName sets the level from its textual form ("debug", "info", ...).
// Unknown names keep the current level.
func WithLevelName(name string) Option {
	return func(c *config) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(name))); err == nil {
			c.level = l
		}
	}
}

// WithFormat sets output format.
// Panics for invalid formats, misconfiguration should prevent startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextValue adds an attribute named name whenever ctx carries key.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// New creates a configured slog.Logger. Defaults are JSON output at info level
// on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	if len(cfg.extractors) > 0 {
		handler = &decorator{next: handler, extractors: cfg.extractors}
	}

	return slog.New(handler)
}

// decorator injects attributes pulled from the record's context.
type decorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (h *decorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *decorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *decorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &decorator{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *decorator) WithGroup(name string) slog.Handler {
	return &decorator{next: h.next.WithGroup(name), extractors: h.extractors}
}
