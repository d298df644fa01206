package fiber

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMinRemaining is the budget below which the work loop yields.
const DefaultMinRemaining = time.Millisecond

// tracerName is the instrumentation scope of commit spans.
const tracerName = "github.com/vango-dev/fiber"

// Config configures a Scheduler.
type Config struct {
	// Logger receives pass, yield and commit records at debug level.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// MinRemaining is the smallest remaining budget worth starting another
	// unit in. Default: DefaultMinRemaining.
	MinRemaining time.Duration

	// Metrics records work-loop counters. Nil disables metrics.
	Metrics *Metrics

	// Tracer creates commit spans. Default: the global otel tracer.
	Tracer trace.Tracer

	// Debug logs every unit of work.
	Debug bool

	// OnCommit observers run after each successful commit, after effects.
	OnCommit []func(CommitInfo)
}

// CommitInfo describes one committed pass.
type CommitInfo struct {
	Pass      uint64
	Units     int
	Deletions int
	Subtree   bool   // Pass was rooted at a component, not the container
	Component string // Root component name for subtree passes
	Duration  time.Duration
}

// Option configures a Scheduler.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMinRemaining sets the yield threshold.
func WithMinRemaining(d time.Duration) Option {
	return func(c *Config) {
		c.MinRemaining = d
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer for commit spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithDebug enables per-unit debug logging.
func WithDebug(debug bool) Option {
	return func(c *Config) {
		c.Debug = debug
	}
}

// WithOnCommit adds a commit observer.
func WithOnCommit(fn func(CommitInfo)) Option {
	return func(c *Config) {
		c.OnCommit = append(c.OnCommit, fn)
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		MinRemaining: DefaultMinRemaining,
	}
}

// resolve fills unset fields with defaults.
func (c *Config) resolve() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MinRemaining <= 0 {
		c.MinRemaining = DefaultMinRemaining
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}
}
