package engine

import (
	"fmt"
	"strings"

	lucidc "github.com/lucidpipe/lucidc"
	"github.com/lucidpipe/lucidc/errors"
	"github.com/lucidpipe/lucidc/ir"
)

// ForkAsyncProducers walks s looking for Realize nodes of stages the env
// marks async and splits each one into a producer task and a consumer task
// running concurrently under a Fork, coordinated by freshly minted counting
// semaphores (spec.md §4.2). Non-async Realize nodes, and everything that
// is not a Realize at all, pass through with their children recursed into.
func ForkAsyncProducers(s ir.Stmt, env lucidc.Env) (ir.Stmt, error) {
	return forkWalk(s, env, newNameGen())
}

func forkWalk(s ir.Stmt, env lucidc.Env, gen *nameGen) (ir.Stmt, error) {
	if realize, ok := s.(*ir.Realize); ok {
		info, ok := env.StageInfo(realize.Name)
		if !ok {
			return nil, errors.Invariant(errors.KindUnknownStage, fmt.Sprintf("Realize(%s)", realize.Name),
				"stage %q has no entry in the environment", realize.Name)
		}
		if !info.Async {
			body, err := forkWalk(realize.Body, env, gen)
			if err != nil {
				return nil, err
			}
			if ir.IsNoOp(body) {
				return ir.NoOp, nil
			}
			if body == realize.Body {
				return realize, nil
			}
			return &ir.Realize{Name: realize.Name, Condition: realize.Condition, Types: realize.Types, Bounds: realize.Bounds, Body: body}, nil
		}
		return forkAsyncStage(realize, env, gen)
	}

	mutate := func(child ir.Stmt) (ir.Stmt, error) { return forkWalk(child, env, gen) }

	if pc, ok := s.(*ir.ProducerConsumer); ok {
		body, err := mutate(pc.Body)
		if err != nil {
			return nil, err
		}
		if ir.IsNoOp(body) {
			return ir.NoOp, nil
		}
		if body == pc.Body {
			return pc, nil
		}
		return &ir.ProducerConsumer{Name: pc.Name, IsProducer: pc.IsProducer, Body: body}, nil
	}

	return defaultRewrite(s, mutate)
}

// forkAsyncStage implements the per-stage procedure of spec.md §4.2: mint k
// consume semaphores, generate the producer and consumer halves from the
// same original body, recurse into both to catch nested async stages, fork
// them, and bind every semaphore (including any clone an enclosing Acquire
// needed) above the fork.
func forkAsyncStage(n *ir.Realize, env lucidc.Env, gen *nameGen) (ir.Stmt, error) {
	k := ir.CountStmts(n.Body, func(s ir.Stmt) bool {
		pc, ok := s.(*ir.ProducerConsumer)
		return ok && pc.Name == n.Name && !pc.IsProducer
	})
	semNames := semaphoreNames(n.Name, k)

	cloned := map[string]string{}
	producerSema := append([]string{}, semNames...)
	producerBody, err := generateProducerBody(n.Body, &producerSema, n.Name, cloned, gen)
	if err != nil {
		return nil, err
	}

	consumerSema := append([]string{}, semNames...)
	consumerBody, err := generateConsumerBody(n.Body, &consumerSema, n.Name)
	if err != nil {
		return nil, err
	}

	producerBody, err = forkWalk(producerBody, env, gen)
	if err != nil {
		return nil, err
	}
	consumerBody, err = forkWalk(consumerBody, env, gen)
	if err != nil {
		return nil, err
	}

	var wrapped ir.Stmt = &ir.Fork{First: producerBody, Rest: consumerBody}

	for _, s := range semNames {
		wrapped = &ir.LetStmt{Name: s, Value: ir.MakeSemaphore(0), Body: wrapped}
	}
	for old, dup := range cloned {
		wrapped = cloneAcquire(wrapped, old, dup)
		wrapped = &ir.LetStmt{Name: dup, Value: ir.MakeSemaphore(0), Body: wrapped}
	}

	return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: wrapped}, nil
}

// generateProducerBody implements §4.2.1: the produce region for stageName
// is kept verbatim and drained of sema, every side effect belonging to some
// other region of stageName's body collapses to a no-op, and any acquire on
// a non-folding semaphore gets a freshly cloned handle recorded in cloned.
func generateProducerBody(body ir.Stmt, sema *[]string, stageName string, cloned map[string]string, gen *nameGen) (ir.Stmt, error) {
	switch n := body.(type) {
	case *ir.ProducerConsumer:
		if n.Name != stageName {
			return n, nil
		}
		if n.IsProducer {
			if len(*sema) == 0 {
				return nil, errors.Invariant(errors.KindDuplicateProducer, fmt.Sprintf("ProducerConsumer(%s)", n.Name),
					"a second produce region was found for %q", n.Name)
			}
			var wrapped ir.Stmt = n.Body
			for len(*sema) > 0 {
				last := len(*sema) - 1
				s := (*sema)[last]
				*sema = (*sema)[:last]
				wrapped = &ir.Block{First: wrapped, Rest: ir.SemaphoreRelease(s, 1)}
			}
			return ir.MakeProduce(n.Name, wrapped), nil
		}
		inner, err := generateProducerBody(n.Body, sema, stageName, cloned, gen)
		if err != nil {
			return nil, err
		}
		if ir.IsNoOp(inner) {
			return ir.NoOp, nil
		}
		return inner, nil

	case *ir.Evaluate, *ir.Provide, *ir.AssertStmt, *ir.Prefetch:
		return ir.NoOp, nil

	case *ir.Acquire:
		v, ok := n.Semaphore.(*ir.Variable)
		if !ok {
			return nil, errors.Invariant(errors.KindInvalidAcquire, "Acquire", "semaphore argument is not a variable reference")
		}
		inner, err := generateProducerBody(n.Body, sema, stageName, cloned, gen)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(v.Name, stageName+".folding_semaphore.") {
			if inner == n.Body {
				return n, nil
			}
			return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: inner}, nil
		}
		dup, ok := cloned[v.Name]
		if !ok {
			dup = gen.clone(v.Name)
			cloned[v.Name] = dup
		}
		return &ir.Acquire{Semaphore: &ir.Variable{Name: dup, Type: v.Type}, Count: n.Count, Body: inner}, nil

	default:
		return defaultRewrite(body, func(c ir.Stmt) (ir.Stmt, error) {
			return generateProducerBody(c, sema, stageName, cloned, gen)
		})
	}
}

// generateConsumerBody implements §4.2.2: the produce region for stageName
// collapses to a no-op, every consume region is wrapped in an Acquire on its
// matching semaphore (kept verbatim, marker included), folding-semaphore
// acquires are dropped since they belong on the producer side, and every
// other side effect is retained unchanged.
func generateConsumerBody(body ir.Stmt, sema *[]string, stageName string) (ir.Stmt, error) {
	switch n := body.(type) {
	case *ir.ProducerConsumer:
		if n.Name != stageName {
			return n, nil
		}
		if n.IsProducer {
			return ir.NoOp, nil
		}
		if len(*sema) == 0 {
			return nil, errors.Invariant(errors.KindDuplicateProducer, fmt.Sprintf("ProducerConsumer(%s)", n.Name),
				"more consume regions than minted semaphores for %q", n.Name)
		}
		last := len(*sema) - 1
		s := (*sema)[last]
		*sema = (*sema)[:last]
		return &ir.Acquire{Semaphore: &ir.Variable{Name: s, Type: ir.SemaphorePointerType}, Count: &ir.IntImm{Value: 1}, Body: n}, nil

	case *ir.Acquire:
		v, ok := n.Semaphore.(*ir.Variable)
		if !ok {
			return nil, errors.Invariant(errors.KindInvalidAcquire, "Acquire", "semaphore argument is not a variable reference")
		}
		if strings.HasPrefix(v.Name, stageName+".folding_semaphore.") {
			return generateConsumerBody(n.Body, sema, stageName)
		}
		return defaultRewrite(n, func(c ir.Stmt) (ir.Stmt, error) {
			return generateConsumerBody(c, sema, stageName)
		})

	default:
		return defaultRewrite(body, func(c ir.Stmt) (ir.Stmt, error) {
			return generateConsumerBody(c, sema, stageName)
		})
	}
}
