package engine

import (
	"fmt"
	"strings"

	"github.com/lucidpipe/lucidc/errors"
	"github.com/lucidpipe/lucidc/ir"
	"go.uber.org/multierr"
)

// Validate checks the output tree against the invariants of spec.md §8
// that are cheap to re-verify after the fact: no make_semaphore survives,
// and every semaphore_release call on the f.semaphore_* family has a
// matching Acquire and vice versa. It is additive diagnostics for
// Config.Strict, not part of the pass's own control flow — Run never calls
// it internally.
func Validate(s ir.Stmt) error {
	var errs error

	if survivors := ir.FindCalls(s, ir.HalideMakeSemaphore); len(survivors) > 0 {
		errs = multierr.Append(errs, errors.Invariant(errors.KindStraySemaphore, "halide_make_semaphore",
			"%d call(s) survived the full pipeline", len(survivors)))
	}

	released := map[string]int{}
	acquired := map[string]int{}
	ir.WalkExprs(s, func(e ir.Expr) {
		call, ok := e.(*ir.Call)
		if !ok || call.Name != ir.HalideSemaphoreRelease {
			return
		}
		if v, ok := firstArgVariable(call); ok {
			released[v.Name]++
		}
	})
	ir.Walk(s, func(st ir.Stmt) {
		acq, ok := st.(*ir.Acquire)
		if !ok {
			return
		}
		if v, ok := acq.Semaphore.(*ir.Variable); ok {
			acquired[v.Name]++
		}
	})

	for name, n := range released {
		if !strings.Contains(name, ".semaphore_") {
			continue
		}
		if n != 1 {
			errs = multierr.Append(errs, errors.Invariant(errors.KindDuplicateProducer, name,
				"released %d times, want exactly 1", n))
		}
		if acquired[name] != 1 {
			errs = multierr.Append(errs, errors.Invariant(errors.KindInvalidAcquire, name,
				"acquired %d times, want exactly 1", acquired[name]))
		}
	}
	for name, n := range acquired {
		if !strings.Contains(name, ".semaphore_") {
			continue
		}
		if _, ok := released[name]; !ok {
			errs = multierr.Append(errs, errors.Invariant(errors.KindInvalidAcquire, name,
				"acquired %d time(s) but never released", n))
		}
	}

	return errs
}

// foldingAcquiresOnConsumerSide reports any Acquire whose semaphore name
// begins with stage+".folding_semaphore." found strictly inside rest — used
// by asyncpipe's tests to check the folding-semaphore-placement property,
// not called from Validate itself since it needs the stage name and fork
// side, which Validate's tree-wide scan does not track.
func foldingAcquiresOnConsumerSide(stage string, consumerHalf ir.Stmt) []string {
	prefix := fmt.Sprintf("%s.folding_semaphore.", stage)
	var hits []string
	ir.Walk(consumerHalf, func(s ir.Stmt) {
		acq, ok := s.(*ir.Acquire)
		if !ok {
			return
		}
		if v, ok := acq.Semaphore.(*ir.Variable); ok && strings.HasPrefix(v.Name, prefix) {
			hits = append(hits, v.Name)
		}
	})
	return hits
}
