package ir

import "testing"

func TestCountStmtsCountsConsumePoints(t *testing.T) {
	tree := &Block{
		First: &ProducerConsumer{Name: "f", IsProducer: false, Body: NoOp},
		Rest: &IfThenElse{
			Condition: &IntImm{Value: 1},
			Then:      &ProducerConsumer{Name: "f", IsProducer: false, Body: NoOp},
			Else:      &ProducerConsumer{Name: "g", IsProducer: false, Body: NoOp},
		},
	}

	isConsumeOf := func(name string) func(Stmt) bool {
		return func(s Stmt) bool {
			pc, ok := s.(*ProducerConsumer)
			return ok && pc.Name == name && !pc.IsProducer
		}
	}

	if got := CountStmts(tree, isConsumeOf("f")); got != 2 {
		t.Fatalf("expected 2 consume points for f, got %d", got)
	}
	if got := CountStmts(tree, isConsumeOf("g")); got != 1 {
		t.Fatalf("expected 1 consume point for g, got %d", got)
	}
}

func TestFindCallsFindsNestedSemaphoreCalls(t *testing.T) {
	tree := &LetStmt{
		Name:  "s",
		Value: MakeSemaphore(0),
		Body: &Fork{
			First: MakeProduce("f", &Evaluate{Value: &Call{Name: HalideSemaphoreRelease, Args: []Expr{&Variable{Name: "s"}, &IntImm{Value: 1}}}}),
			Rest:  &Acquire{Semaphore: &Variable{Name: "s"}, Count: &IntImm{Value: 1}, Body: NoOp},
		},
	}

	calls := FindCalls(tree, HalideMakeSemaphore, HalideSemaphoreRelease)
	if len(calls) != 2 {
		t.Fatalf("expected 2 matching calls, got %d: %v", len(calls), calls)
	}
}
