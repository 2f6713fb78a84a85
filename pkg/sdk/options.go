package heartcheck

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	artifactPath string
	refit        bool

	driver   string // "valkey" or "redis"; empty keeps counts in memory
	addrs    []string
	password string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithArtifact sets the model artifact bundle path.
// Default: artifacts/heart_model.yaml.
func WithArtifact(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifactPath = path
	})
}

// WithRefit fits preprocessing on each submission instead of using the
// parameters stored in the bundle. A single submission then encodes to
// fewer features than the model expects and Predict returns ErrShapeMismatch.
func WithRefit() Option {
	return optionFunc(func(c *clientConfig) {
		c.refit = true
	})
}

// WithValkey persists prediction counts to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis persists prediction counts to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
