package engine

import "github.com/lucidpipe/lucidc/ir"

// defaultRewrite mirrors ir.Default (the no-op-collapsing recursion of
// spec.md §4.1) but lets mutate fail, and additionally recurses into
// Acquire's body without collapsing it to no-op even when that body
// becomes one — an Acquire's blocking wait is an observable effect on
// its own, so a no-op body does not make the whole node disappear.
//
// This is the shared fallback for generateProducerBody, generateConsumerBody,
// and the top-level fork-finding walk; each handles its own node kinds
// first and only falls through here for the generic structural ones.
func defaultRewrite(s ir.Stmt, mutate func(ir.Stmt) (ir.Stmt, error)) (ir.Stmt, error) {
	switch n := s.(type) {
	case *ir.Acquire:
		body, err := mutate(n.Body)
		if err != nil {
			return nil, err
		}
		if body == n.Body {
			return n, nil
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}, nil

	case *ir.LetStmt:
		body, err := mutate(n.Body)
		if err != nil {
			return nil, err
		}
		if ir.IsNoOp(body) {
			return ir.NoOp, nil
		}
		if body == n.Body {
			return n, nil
		}
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}, nil

	case *ir.For:
		body, err := mutate(n.Body)
		if err != nil {
			return nil, err
		}
		if ir.IsNoOp(body) {
			return ir.NoOp, nil
		}
		if body == n.Body {
			return n, nil
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}, nil

	case *ir.Block:
		first, err := mutate(n.First)
		if err != nil {
			return nil, err
		}
		rest, err := mutate(n.Rest)
		if err != nil {
			return nil, err
		}
		firstNoOp, restNoOp := ir.IsNoOp(first), ir.IsNoOp(rest)
		switch {
		case firstNoOp && restNoOp:
			return ir.NoOp, nil
		case firstNoOp:
			return rest, nil
		case restNoOp:
			return first, nil
		case first == n.First && rest == n.Rest:
			return n, nil
		default:
			return &ir.Block{First: first, Rest: rest}, nil
		}

	case *ir.Fork:
		first, err := mutate(n.First)
		if err != nil {
			return nil, err
		}
		rest, err := mutate(n.Rest)
		if err != nil {
			return nil, err
		}
		firstNoOp, restNoOp := ir.IsNoOp(first), ir.IsNoOp(rest)
		switch {
		case firstNoOp && restNoOp:
			return ir.NoOp, nil
		case firstNoOp:
			return rest, nil
		case restNoOp:
			return first, nil
		case first == n.First && rest == n.Rest:
			return n, nil
		default:
			return &ir.Fork{First: first, Rest: rest}, nil
		}

	case *ir.Realize:
		body, err := mutate(n.Body)
		if err != nil {
			return nil, err
		}
		if ir.IsNoOp(body) {
			return ir.NoOp, nil
		}
		if body == n.Body {
			return n, nil
		}
		return &ir.Realize{Name: n.Name, Types: n.Types, Bounds: n.Bounds, Condition: n.Condition, Body: body}, nil

	case *ir.IfThenElse:
		then, err := mutate(n.Then)
		if err != nil {
			return nil, err
		}
		var els ir.Stmt
		if n.Else != nil {
			els, err = mutate(n.Else)
			if err != nil {
				return nil, err
			}
		}
		thenNoOp := ir.IsNoOp(then)
		elseNoOp := n.Else == nil || ir.IsNoOp(els)
		if thenNoOp && elseNoOp {
			return ir.NoOp, nil
		}
		if then == n.Then && els == n.Else {
			return n, nil
		}
		return &ir.IfThenElse{Condition: n.Condition, Then: then, Else: els}, nil

	default:
		return s, nil
	}
}
