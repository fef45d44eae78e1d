package engine

import (
	"testing"

	"github.com/lucidpipe/lucidc/ir"
)

func TestTightenForkNodes_HoistsSharedEqualBinding(t *testing.T) {
	tree := &ir.Fork{
		First: &ir.LetStmt{Name: "a", Value: &ir.IntImm{Value: 7}, Body: &ir.Provide{Name: "p", Values: []ir.Expr{&ir.Variable{Name: "a"}}}},
		Rest:  &ir.LetStmt{Name: "a", Value: &ir.IntImm{Value: 7}, Body: &ir.Provide{Name: "q", Values: []ir.Expr{&ir.Variable{Name: "a"}}}},
	}

	got := TightenForkNodes(tree)

	let, ok := got.(*ir.LetStmt)
	if !ok || let.Name != "a" {
		t.Fatalf("expected the shared binding hoisted above the fork, got:\n%s", ir.Sprint(got))
	}
	if _, ok := let.Body.(*ir.Fork); !ok {
		t.Fatalf("expected a fork directly beneath the hoisted binding, got:\n%s", ir.Sprint(let.Body))
	}
}

func TestTightenForkNodes_MismatchedValuesDoNotHoist(t *testing.T) {
	tree := &ir.Fork{
		First: &ir.LetStmt{Name: "a", Value: &ir.IntImm{Value: 7}, Body: &ir.Provide{Name: "p", Values: []ir.Expr{&ir.Variable{Name: "a"}}}},
		Rest:  &ir.LetStmt{Name: "a", Value: &ir.IntImm{Value: 9}, Body: &ir.Provide{Name: "q", Values: []ir.Expr{&ir.Variable{Name: "a"}}}},
	}

	got := TightenForkNodes(tree)

	if _, ok := got.(*ir.LetStmt); ok {
		t.Fatalf("bindings with different values must not hoist, got:\n%s", ir.Sprint(got))
	}
}

func TestTightenForkNodes_HoistsOneSidedBindingUnreferencedByTheOther(t *testing.T) {
	tree := &ir.Fork{
		First: &ir.LetStmt{Name: "a", Value: &ir.IntImm{Value: 7}, Body: &ir.Provide{Name: "p", Values: []ir.Expr{&ir.Variable{Name: "a"}}}},
		Rest:  &ir.Provide{Name: "q"},
	}

	got := TightenForkNodes(tree)

	let, ok := got.(*ir.LetStmt)
	if !ok || let.Name != "a" {
		t.Fatalf("expected the one-sided binding hoisted, got:\n%s", ir.Sprint(got))
	}
	fork, ok := let.Body.(*ir.Fork)
	if !ok {
		t.Fatalf("expected a fork beneath the hoisted binding, got:\n%s", ir.Sprint(let.Body))
	}
	if _, ok := fork.Rest.(*ir.Provide); !ok {
		t.Fatalf("the untouched side should remain as-is, got:\n%s", ir.Sprint(fork.Rest))
	}
}

func TestTightenForkNodes_DropsDeadBindingInsideFork(t *testing.T) {
	tree := &ir.Fork{
		First: &ir.LetStmt{Name: "unused", Value: &ir.IntImm{Value: 1}, Body: &ir.Provide{Name: "p"}},
		Rest:  &ir.Provide{Name: "q"},
	}

	got := TightenForkNodes(tree)

	if ir.UsesName(got, "unused") {
		t.Fatalf("expected the dead binding dropped, got:\n%s", ir.Sprint(got))
	}
	if _, ok := got.(*ir.Fork); !ok {
		t.Fatalf("expected a plain fork once the dead binding is gone, got:\n%s", ir.Sprint(got))
	}
}

func TestTightenForkNodes_CollapsesNoOpChild(t *testing.T) {
	tree := &ir.Fork{First: ir.NoOp, Rest: &ir.Provide{Name: "q"}}

	got := TightenForkNodes(tree)

	if _, ok := got.(*ir.Fork); ok {
		t.Fatalf("expected the fork to collapse to its non-no-op child, got:\n%s", ir.Sprint(got))
	}
	if p, ok := got.(*ir.Provide); !ok || p.Name != "q" {
		t.Fatalf("expected the surviving child, got:\n%s", ir.Sprint(got))
	}
}
