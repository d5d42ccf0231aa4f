package machine

import "log/slog"

// DefaultMaxDepth bounds triggers fired from Enter when no limit is configured.
const DefaultMaxDepth = 256

// Option configures a machine during construction.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	maxDepth int
}

func defaultOptions() *options {
	return &options{maxDepth: DefaultMaxDepth}
}

// WithLogger sets the logger for the machine. Records are emitted at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth limits how deeply triggers fired from Enter may nest.
// Zero removes the limit; negative values are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.maxDepth = depth
		}
	}
}

// Config holds environment driven settings. Load it with any env-tag aware
// loader and pass Options to New.
type Config struct {
	Service   string `env:"FSM_SERVICE" envDefault:"machine"`
	MaxDepth  int    `env:"FSM_MAX_DEPTH" envDefault:"256"`
	LogLevel  string `env:"FSM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FSM_LOG_FORMAT" envDefault:"text"`
}

// Options converts the config into machine options. The logger is passed in
// since building one is left to the caller.
func (c Config) Options(logger *slog.Logger) []Option {
	return []Option{
		WithMaxDepth(c.MaxDepth),
		WithLogger(logger),
	}
}
