// Package asyncpipe implements the fixed five-stage lowering pipeline that
// turns async-marked pipeline stages into producer/consumer pairs
// coordinated by counting semaphores.
package asyncpipe

import (
	lucidc "github.com/lucidpipe/lucidc"
	"github.com/lucidpipe/lucidc/asyncpipe/internal/engine"
	"github.com/lucidpipe/lucidc/ir"
	"go.uber.org/zap"
)

// Config controls one Lower call.
type Config struct {
	// Strict re-validates the output against the invariants of spec.md §8
	// (semaphore release/acquire balance, no surviving make_semaphore) and
	// returns every violation found, aggregated with multierr, instead of
	// only the first internal-invariant error the pass itself hits.
	Strict bool
}

// Lower runs the full pipeline — TightenConsumeRegions, ForkAsyncProducers,
// ExpandAcquireNodes, TightenForkNodes, LowerSemaphores, in that order — on
// s, consulting env to decide which Realize nodes name an async stage.
//
// On an internal-invariant violation the pass returns immediately with a
// *errors.Error and a nil tree; it never partially applies a stage.
func Lower(s ir.Stmt, env lucidc.Env, cfg Config) (ir.Stmt, error) {
	out, err := engine.Run(s, env)
	if err != nil {
		return nil, err
	}
	if cfg.Strict {
		if verr := engine.Validate(out); verr != nil {
			return nil, verr
		}
	}
	return out, nil
}

// SetLogger installs a logger the pipeline uses for per-stage debug output.
// The default is silent.
func SetLogger(l *zap.Logger) {
	engine.SetLogger(l)
}
