package warp

import (
	"log/slog"
	"time"

	"github.com/gogpu/warp/internal/parallel"
)

// Engine renders frames through cached transform tables.
//
// An Engine owns a worker pool for table generation, a cache of recently
// used tables, and the beat-toggle state that drives the OnBeat source
// mapping modes. Hosts keep one Engine per effect slot for the lifetime of
// the stream and call Render once per frame.
//
// Render must be called from one goroutine at a time: the beat toggle
// advances exactly once per call and is deliberately unsynchronized.
// Everything behind it (tables, cache, pool) is safe for concurrent use,
// so multiple Engines may share a process freely.
type Engine struct {
	pool   *parallel.Pool
	tables *tableCache
	log    *slog.Logger // nil means the package-level logger

	beat     beatToggle
	lastMode SourceMapMode

	// reportedScript is the script text whose compile error has already
	// been returned. A broken script surfaces once, not sixty times a
	// second; editing the text (or fixing it) re-arms the report.
	reportedScript string
}

// NewEngine creates an engine ready for rendering.
//
// Example:
//
//	eng := warp.NewEngine()
//	defer eng.Close()
//
//	cfg := warp.Config{Effect: warp.EffectMediumSwirl, Subpixel: true}
//	for frame := range frames {
//		err := eng.Render(cfg, warp.Frame{Input: frame.In, Output: frame.Out})
//		...
//	}
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		pool:   parallel.NewPool(o.workers),
		tables: newTableCache(),
		log:    o.logger,
	}
	e.logger().Debug("engine created", "workers", e.pool.Workers())
	return e
}

// logger resolves the engine's log destination at call time, so SetLogger
// takes effect on engines created without WithLogger.
func (e *Engine) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return Logger()
}

// Render remaps f.Input into f.Output according to cfg.
//
// The transform table is fetched from the cache, or generated on the
// engine's worker pool when cfg or the frame dimensions changed since the
// previous call. Generation for a custom script that fails to compile
// falls back to the identity table; the *script.CompileError is returned
// exactly once per script text while frames keep flowing. All other
// render paths return nil.
//
// Render panics if either buffer is nil, if their dimensions differ, or
// if cfg.Effect is not a valid effect.
func (e *Engine) Render(cfg Config, f Frame) error {
	if f.Input == nil || f.Output == nil {
		panic("warp: Render requires non-nil input and output buffers")
	}
	width, height := f.Input.Width(), f.Input.Height()

	// Beat state advances every frame, even on frames that only probe
	// the cache, so toggle parity tracks the beat stream exactly.
	if cfg.SourceMap != e.lastMode {
		e.beat.reset()
		e.lastMode = cfg.SourceMap
	}
	toggled := e.beat.observe(f.IsBeat, cfg.SourceMap.beatReactive())

	key, scriptText := makeTableKey(cfg, width, height)
	entry := e.tables.snapshot(key, scriptText)
	if entry == nil {
		start := time.Now()
		var generated bool
		entry, generated = e.tables.replace(key, scriptText, func() (*Table, error) {
			return generateOn(e.pool, cfg, width, height)
		})
		if generated {
			e.logger().Debug("transform table generated",
				"effect", cfg.Effect,
				"width", width,
				"height", height,
				"duration", time.Since(start))
		}
	}

	var err error
	if entry.err != nil {
		if cfg.Script != e.reportedScript {
			e.reportedScript = cfg.Script
			e.logger().Warn("script rejected, rendering identity mapping",
				"err", entry.err)
			err = entry.err
		}
	} else if e.reportedScript != "" {
		e.reportedScript = ""
	}

	sourceMap := cfg.SourceMap.base() != toggled
	apply(entry.table, cfg, f.Input, f.Output, sourceMap)
	return err
}

// Close releases the engine's worker pool. The engine remains usable —
// subsequent Renders generate tables on the calling goroutine — but hosts
// should treat Close as the end of the engine's life.
func (e *Engine) Close() {
	e.pool.Close()
}
