package engine

import (
	"testing"

	lucidc "github.com/lucidpipe/lucidc"
	"github.com/lucidpipe/lucidc/ir"
)

func produce(name string, body ir.Stmt) ir.Stmt {
	return ir.MakeProduce(name, body)
}

func consume(name string, body ir.Stmt) ir.Stmt {
	return &ir.ProducerConsumer{Name: name, IsProducer: false, Body: body}
}

func leaf(name string) ir.Stmt {
	return &ir.Provide{Name: name}
}

func TestForkAsyncProducers_NonAsyncRecursesWithoutForking(t *testing.T) {
	tree := &ir.Realize{Name: "f", Body: produce("f", leaf("f"))}
	env := lucidc.MapEnv{"f": {Async: false}}

	got, err := ForkAsyncProducers(tree, env)
	if err != nil {
		t.Fatalf("ForkAsyncProducers: %v", err)
	}
	if ir.CountStmts(got, func(s ir.Stmt) bool { _, ok := s.(*ir.Fork); return ok }) != 0 {
		t.Fatalf("non-async stage should not be forked, got:\n%s", ir.Sprint(got))
	}
}

func TestForkAsyncProducers_UnknownStageIsFatal(t *testing.T) {
	tree := &ir.Realize{Name: "f", Body: leaf("f")}
	if _, err := ForkAsyncProducers(tree, lucidc.MapEnv{}); err == nil {
		t.Fatal("expected an unknown-stage error")
	}
}

func TestForkAsyncProducers_MultipleConsumeRegionsMintMatchingSemaphores(t *testing.T) {
	tree := &ir.Realize{
		Name: "f",
		Body: &ir.Block{
			First: produce("f", leaf("f")),
			Rest: &ir.Block{
				First: consume("f", leaf("use1")),
				Rest:  consume("f", leaf("use2")),
			},
		},
	}
	env := lucidc.MapEnv{"f": {Async: true}}

	got, err := ForkAsyncProducers(tree, env)
	if err != nil {
		t.Fatalf("ForkAsyncProducers: %v", err)
	}

	releases := ir.FindCalls(got, ir.HalideSemaphoreRelease)
	if len(releases) != 2 {
		t.Fatalf("expected 2 release calls for k=2 consume regions, got %d:\n%s", len(releases), ir.Sprint(got))
	}
	acquires := ir.CountStmts(got, func(s ir.Stmt) bool { _, ok := s.(*ir.Acquire); return ok })
	if acquires != 2 {
		t.Fatalf("expected 2 acquires for k=2 consume regions, got %d:\n%s", acquires, ir.Sprint(got))
	}
}

func TestForkAsyncProducers_DuplicateProducerIsFatal(t *testing.T) {
	tree := &ir.Realize{
		Name: "f",
		Body: &ir.Block{
			First: produce("f", leaf("f1")),
			Rest: &ir.Block{
				First: produce("f", leaf("f2")),
				Rest:  consume("f", leaf("use")),
			},
		},
	}
	env := lucidc.MapEnv{"f": {Async: true}}

	if _, err := ForkAsyncProducers(tree, env); err == nil {
		t.Fatal("expected a duplicate-producer error")
	}
}

func TestForkAsyncProducers_ClonesNonFoldingAcquireAndRecordsMapping(t *testing.T) {
	s := &ir.Variable{Name: "s", Type: ir.SemaphorePointerType}
	tree := &ir.Realize{
		Name: "f",
		Body: &ir.Acquire{Semaphore: s, Count: &ir.IntImm{Value: 1}, Body: &ir.Block{
			First: produce("f", leaf("f")),
			Rest:  consume("f", leaf("use")),
		}},
	}
	env := lucidc.MapEnv{"f": {Async: true}}

	got, err := ForkAsyncProducers(tree, env)
	if err != nil {
		t.Fatalf("ForkAsyncProducers: %v", err)
	}

	// The outer acquire's semaphore should have been cloned to a fresh
	// name with its own LetStmt binding, one level beyond the stage's own
	// f.semaphore_0 binding.
	extraBindings := ir.CountStmts(got, func(st ir.Stmt) bool {
		l, ok := st.(*ir.LetStmt)
		return ok && l.Name != "f.semaphore_0"
	})
	if extraBindings == 0 {
		t.Fatalf("expected an additional LetStmt binding for the cloned semaphore, got:\n%s", ir.Sprint(got))
	}
	if ir.UsesName(got, "s") {
		// "s" itself should only survive inside the fork's consumer task
		// (the producer task now references the clone instead).
		fork, ok := findForkNode(got)
		if ok && ir.UsesName(fork.First, "s") {
			t.Fatalf("original semaphore name leaked into the producer task:\n%s", ir.Sprint(fork.First))
		}
	}
}

// Scenario 4: a second async stage's consume region (not just its produce
// region) nested inside the outer stage, underneath an Acquire the two
// stages share (spec.md §8 scenario 4). Stage g's markers sit outside f's
// own produce/consume bodies, so f's producer- and consumer-half rewrites
// both pass them through opaquely (the foreign-name branch of §4.2.1/4.2.2)
// and each independently forks g on its own side. The shared semaphore "s"
// is not a folding semaphore, so f's producer half clones it and records
// the mapping; f's consumer half keeps the original name.
func TestForkAsyncProducers_NestedConsumeRegionSharesAcquireAcrossBoundary(t *testing.T) {
	s := &ir.Variable{Name: "s", Type: ir.SemaphorePointerType}
	innerG := &ir.Realize{
		Name: "g",
		Body: &ir.Block{
			First: produce("g", leaf("g")),
			Rest:  consume("g", leaf("use_g")),
		},
	}
	tree := &ir.Realize{
		Name: "f",
		Body: &ir.Block{
			First: produce("f", leaf("f")),
			Rest: &ir.Block{
				First: &ir.Acquire{Semaphore: s, Count: &ir.IntImm{Value: 1}, Body: innerG},
				Rest:  consume("f", leaf("use_f")),
			},
		},
	}
	env := lucidc.MapEnv{"f": {Async: true}, "g": {Async: true}}

	got, err := ForkAsyncProducers(tree, env)
	if err != nil {
		t.Fatalf("ForkAsyncProducers: %v", err)
	}

	fork, ok := findForkNode(got)
	if !ok {
		t.Fatalf("expected f to fork, got:\n%s", ir.Sprint(got))
	}
	if !ir.UsesName(fork.Rest, "s") {
		t.Fatalf("expected the consumer task to keep the original semaphore name, got:\n%s", ir.Sprint(fork.Rest))
	}
	if ir.UsesName(fork.First, "s") {
		t.Fatalf("original semaphore name leaked into the producer task:\n%s", ir.Sprint(fork.First))
	}

	extraBindings := ir.CountStmts(got, func(st ir.Stmt) bool {
		l, ok := st.(*ir.LetStmt)
		return ok && l.Name != "f.semaphore_0"
	})
	if extraBindings == 0 {
		t.Fatalf("expected an additional LetStmt binding for the cloned semaphore, got:\n%s", ir.Sprint(got))
	}

	gForks := ir.CountStmts(got, func(st ir.Stmt) bool {
		fk, isFork := st.(*ir.Fork)
		return isFork && fk != fork
	})
	if gForks < 2 {
		t.Fatalf("expected g to be forked independently inside both of f's halves, got %d nested forks:\n%s", gForks, ir.Sprint(got))
	}
}

func findForkNode(s ir.Stmt) (*ir.Fork, bool) {
	var found *ir.Fork
	ir.Walk(s, func(n ir.Stmt) {
		if found == nil {
			if f, ok := n.(*ir.Fork); ok {
				found = f
			}
		}
	})
	return found, found != nil
}

func TestGenerateConsumerBody_FoldingAcquireDropped(t *testing.T) {
	folding := &ir.Variable{Name: "f.folding_semaphore.0", Type: ir.SemaphorePointerType}
	body := &ir.Acquire{Semaphore: folding, Count: &ir.IntImm{Value: 1}, Body: leaf("f")}
	sema := []string{}

	got, err := generateConsumerBody(body, &sema, "f")
	if err != nil {
		t.Fatalf("generateConsumerBody: %v", err)
	}
	if hits := foldingAcquiresOnConsumerSide("f", got); len(hits) != 0 {
		t.Fatalf("folding acquire should be dropped from the consumer side, found: %v", hits)
	}
}

func TestGenerateProducerBody_FailsOnDuplicateProducer(t *testing.T) {
	body := produce("f", leaf("f"))
	sema := []string{} // already drained: nothing left for a producer to take

	if _, err := generateProducerBody(body, &sema, "f", map[string]string{}, newNameGen()); err == nil {
		t.Fatal("expected a duplicate-producer error when sema is already empty")
	}
}

func TestGenerateProducerBody_NonVariableAcquireIsFatal(t *testing.T) {
	body := &ir.Acquire{Semaphore: &ir.IntImm{Value: 1}, Count: &ir.IntImm{Value: 1}, Body: leaf("f")}
	sema := []string{}

	if _, err := generateProducerBody(body, &sema, "f", map[string]string{}, newNameGen()); err == nil {
		t.Fatal("expected an invalid-acquire error for a non-variable semaphore")
	}
}
