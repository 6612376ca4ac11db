package syncbridge

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/syncbridge/metrics"
)

// config holds per-Spawn configuration.
type config struct {
	// RequireSuspension makes Spawn fail with ErrSuspensionRequired when
	// the function completes without a single real suspension.
	// Default: false.
	RequireSuspension bool

	// Metrics receives bridge instrumentation. Advisory only; the bridge
	// behaves identically with the no-op provider.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider

	// Runtime overrides runtime discovery for this bridge. When nil, Spawn
	// uses CurrentRuntime on the caller's context.
	// Default: nil.
	Runtime *Runtime
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		RequireSuspension: false,
		Metrics:           metrics.NewNoopProvider(),
		Runtime:           nil,
	}
}

// validateConfig performs lightweight invariants checks.
func validateConfig(cfg *config) error {
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "metrics provider must not be nil"))
	}
	return nil
}

// SpawnOption configures a single Spawn call.
type SpawnOption func(*config) error

// WithRequireSuspension makes Spawn fail with ErrSuspensionRequired unless
// the function performed at least one asynchronous bridge. Use it to detect
// backends that advertise asynchronous capability but never suspend.
func WithRequireSuspension() SpawnOption {
	return func(cfg *config) error { cfg.RequireSuspension = true; return nil }
}

// WithMetrics routes bridge instrumentation to the given provider.
func WithMetrics(p metrics.Provider) SpawnOption {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithRuntime pins the bridge to rt instead of discovering a runtime from
// the caller's context.
func WithRuntime(rt *Runtime) SpawnOption {
	return func(cfg *config) error {
		if rt == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRuntime requires a non-nil runtime"))
		}
		cfg.Runtime = rt
		return nil
	}
}
