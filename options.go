package warp

import "log/slog"

// EngineOption configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default: one worker per CPU
//	eng := warp.NewEngine()
//
//	// Pin table generation to four workers
//	eng := warp.NewEngine(warp.WithWorkers(4))
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers int
	logger  *slog.Logger
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers: 0,   // 0 means runtime.NumCPU()
		logger:  nil, // nil means the package-level logger
	}
}

// WithWorkers sets the number of goroutines used for table generation.
// Values below 1 select one worker per CPU. Table generation is the only
// parallel stage; rendering a frame against a cached table costs no
// goroutines beyond the caller's.
//
// Example:
//
//	eng := warp.NewEngine(warp.WithWorkers(2))
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithLogger routes the engine's diagnostics to l instead of the
// package-level logger configured with SetLogger.
//
// Example:
//
//	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	eng := warp.NewEngine(warp.WithLogger(log))
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = l
	}
}
