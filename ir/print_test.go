package ir

import (
	"strings"
	"testing"
)

func TestSprintRendersForkAndAcquire(t *testing.T) {
	tree := &Fork{
		First: MakeProduce("f", &Evaluate{Value: &IntImm{Value: 1}}),
		Rest: &Acquire{
			Semaphore: &Variable{Name: "f.semaphore_0"},
			Count:     &IntImm{Value: 1},
			Body:      &ProducerConsumer{Name: "f", IsProducer: false, Body: NoOp},
		},
	}

	out := Sprint(tree)
	for _, want := range []string{"fork:", "produce f:", "acquire(f.semaphore_0, 1):", "consume f:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
