package engine

import "github.com/lucidpipe/lucidc/ir"

// TightenForkNodes hoists bindings and allocations shared between the two
// halves of a Fork above it, drops dead bindings/allocations that live
// inside a fork child but go unused, and collapses a fork with a no-op
// child down to the other child (spec.md §4.5).
func TightenForkNodes(s ir.Stmt) ir.Stmt {
	return tightenFork(s, false)
}

func tightenFork(s ir.Stmt, inFork bool) ir.Stmt {
	switch n := s.(type) {
	case *ir.Fork:
		first := tightenFork(n.First, true)
		rest := tightenFork(n.Rest, true)
		return makeFork(first, rest)

	case *ir.LetStmt:
		body := tightenFork(n.Body, inFork)
		if inFork && !ir.UsesName(body, n.Name) {
			return body
		}
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}

	case *ir.Realize:
		body := tightenFork(n.Body, inFork)
		if inFork && !ir.UsesName(body, n.Name) {
			return body
		}
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: body}

	case *ir.Block:
		first := tightenFork(n.First, inFork)
		rest := tightenFork(n.Rest, inFork)
		firstNoOp, restNoOp := ir.IsNoOp(first), ir.IsNoOp(rest)
		switch {
		case firstNoOp && restNoOp:
			return ir.NoOp
		case firstNoOp:
			return rest
		case restNoOp:
			return first
		case first == n.First && rest == n.Rest:
			return n
		default:
			return &ir.Block{First: first, Rest: rest}
		}

	case *ir.For:
		body := tightenFork(n.Body, inFork)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *ir.ProducerConsumer:
		body := tightenFork(n.Body, inFork)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: body}

	case *ir.Acquire:
		body := tightenFork(n.Body, inFork)
		if body == n.Body {
			return n
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}

	case *ir.IfThenElse:
		then := tightenFork(n.Then, inFork)
		var els ir.Stmt
		if n.Else != nil {
			els = tightenFork(n.Else, inFork)
		}
		thenNoOp := ir.IsNoOp(then)
		elseNoOp := n.Else == nil || ir.IsNoOp(els)
		if thenNoOp && elseNoOp {
			return ir.NoOp
		}
		if then == n.Then && els == n.Else {
			return n
		}
		return &ir.IfThenElse{Condition: n.Condition, Then: then, Else: els}

	default:
		return s
	}
}

// makeFork implements the ordered try-list of spec.md §4.5's fork
// composition rule.
func makeFork(first, rest ir.Stmt) ir.Stmt {
	if ir.IsNoOp(first) {
		return rest
	}
	if ir.IsNoOp(rest) {
		return first
	}

	if lf, ok := first.(*ir.LetStmt); ok {
		if lr, ok := rest.(*ir.LetStmt); ok && lf.Name == lr.Name && ir.ExprEqual(lf.Value, lr.Value) {
			return &ir.LetStmt{Name: lf.Name, Value: lf.Value, Body: makeFork(lf.Body, lr.Body)}
		}
		if !ir.UsesName(rest, lf.Name) {
			return &ir.LetStmt{Name: lf.Name, Value: lf.Value, Body: makeFork(lf.Body, rest)}
		}
	}
	if lr, ok := rest.(*ir.LetStmt); ok {
		if !ir.UsesName(first, lr.Name) {
			return &ir.LetStmt{Name: lr.Name, Value: lr.Value, Body: makeFork(first, lr.Body)}
		}
	}
	if rf, ok := first.(*ir.Realize); ok {
		if !ir.UsesName(rest, rf.Name) {
			return &ir.Realize{Name: rf.Name, Condition: rf.Condition, Types: rf.Types, Bounds: rf.Bounds, Body: makeFork(rf.Body, rest)}
		}
	}
	if rr, ok := rest.(*ir.Realize); ok {
		if !ir.UsesName(first, rr.Name) {
			return &ir.Realize{Name: rr.Name, Condition: rr.Condition, Types: rr.Types, Bounds: rr.Bounds, Body: makeFork(first, rr.Body)}
		}
	}
	return &ir.Fork{First: first, Rest: rest}
}
