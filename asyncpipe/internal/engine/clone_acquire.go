package engine

import "github.com/lucidpipe/lucidc/ir"

// cloneAcquire implements the CloneAcquire rewrite of spec.md §4.2.3: every
// Evaluate of a halide_semaphore_release or halide_semaphore_init call whose
// first argument is the variable oldName gets a duplicate statement added
// right after it, issuing the same call against newName. Every other
// statement passes through unchanged.
//
// This runs once per cloned_acquires entry recorded while generating a
// stage's producer half, so the duplicated semaphore starts life with the
// same initialization/signal pattern as the one it was cloned from.
func cloneAcquire(s ir.Stmt, oldName, newName string) ir.Stmt {
	switch n := s.(type) {
	case *ir.Evaluate:
		call, ok := n.Value.(*ir.Call)
		if !ok || (call.Name != ir.HalideSemaphoreRelease && call.Name != ir.HalideSemaphoreInit) {
			return n
		}
		v, ok := firstArgVariable(call)
		if !ok || v.Name != oldName {
			return n
		}
		dupArgs := append([]ir.Expr{}, call.Args...)
		dupArgs[0] = &ir.Variable{Name: newName, Type: v.Type}
		dup := &ir.Evaluate{Value: &ir.Call{Name: call.Name, Args: dupArgs, CallKind: call.CallKind, Type: call.Type}}
		return &ir.Block{First: n, Rest: dup}

	case *ir.LetStmt:
		body := cloneAcquire(n.Body, oldName, newName)
		if body == n.Body {
			return n
		}
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}

	case *ir.Block:
		first := cloneAcquire(n.First, oldName, newName)
		rest := cloneAcquire(n.Rest, oldName, newName)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Block{First: first, Rest: rest}

	case *ir.For:
		body := cloneAcquire(n.Body, oldName, newName)
		if body == n.Body {
			return n
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *ir.Realize:
		body := cloneAcquire(n.Body, oldName, newName)
		if body == n.Body {
			return n
		}
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: body}

	case *ir.ProducerConsumer:
		body := cloneAcquire(n.Body, oldName, newName)
		if body == n.Body {
			return n
		}
		return &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: body}

	case *ir.Fork:
		first := cloneAcquire(n.First, oldName, newName)
		rest := cloneAcquire(n.Rest, oldName, newName)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Fork{First: first, Rest: rest}

	case *ir.Acquire:
		body := cloneAcquire(n.Body, oldName, newName)
		if body == n.Body {
			return n
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}

	case *ir.IfThenElse:
		then := cloneAcquire(n.Then, oldName, newName)
		var els ir.Stmt
		if n.Else != nil {
			els = cloneAcquire(n.Else, oldName, newName)
		}
		if then == n.Then && els == n.Else {
			return n
		}
		return &ir.IfThenElse{Condition: n.Condition, Then: then, Else: els}

	default:
		return s
	}
}

func firstArgVariable(c *ir.Call) (*ir.Variable, bool) {
	if len(c.Args) == 0 {
		return nil, false
	}
	v, ok := c.Args[0].(*ir.Variable)
	return v, ok
}
