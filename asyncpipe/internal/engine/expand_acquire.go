package engine

import "github.com/lucidpipe/lucidc/ir"

// ExpandAcquireNodes hoists Acquire nodes outward past adjacent statements,
// bindings, allocations, and producer/consumer markers so a single task
// covers as much trailing work as possible (spec.md §4.4). Rules apply
// bottom-up: children are rewritten first, then the rule at this node
// checks whether a mutated child came back as an Acquire.
func ExpandAcquireNodes(s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case *ir.Block:
		first := ExpandAcquireNodes(n.First)
		rest := n.Rest
		if acq, ok := first.(*ir.Acquire); ok {
			return ExpandAcquireNodes(&ir.Acquire{Semaphore: acq.Semaphore, Count: acq.Count, Body: &ir.Block{First: acq.Body, Rest: rest}})
		}
		rest = ExpandAcquireNodes(rest)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Block{First: first, Rest: rest}

	case *ir.Realize:
		body := ExpandAcquireNodes(n.Body)
		if acq, ok := body.(*ir.Acquire); ok {
			return ExpandAcquireNodes(&ir.Acquire{Semaphore: acq.Semaphore, Count: acq.Count,
				Body: &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: acq.Body}})
		}
		if body == n.Body {
			return n
		}
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: body}

	case *ir.LetStmt:
		body := ExpandAcquireNodes(n.Body)
		if acq, ok := body.(*ir.Acquire); ok {
			if !ir.ExprUsesAnyName(acq.Semaphore, n.Name) && !ir.ExprUsesAnyName(acq.Count, n.Name) {
				return ExpandAcquireNodes(&ir.Acquire{Semaphore: acq.Semaphore, Count: acq.Count,
					Body: &ir.LetStmt{Name: n.Name, Value: n.Value, Body: acq.Body}})
			}
		}
		if body == n.Body {
			return n
		}
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}

	case *ir.ProducerConsumer:
		body := ExpandAcquireNodes(n.Body)
		if acq, ok := body.(*ir.Acquire); ok {
			return ExpandAcquireNodes(&ir.Acquire{Semaphore: acq.Semaphore, Count: acq.Count,
				Body: &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: acq.Body}})
		}
		if body == n.Body {
			return n
		}
		return &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: body}

	case *ir.Acquire:
		body := ExpandAcquireNodes(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}

	case *ir.For:
		body := ExpandAcquireNodes(n.Body)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *ir.Fork:
		first := ExpandAcquireNodes(n.First)
		rest := ExpandAcquireNodes(n.Rest)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Fork{First: first, Rest: rest}

	case *ir.IfThenElse:
		then := ExpandAcquireNodes(n.Then)
		var els ir.Stmt
		if n.Else != nil {
			els = ExpandAcquireNodes(n.Else)
		}
		if then == n.Then && els == n.Else {
			return n
		}
		return &ir.IfThenElse{Condition: n.Condition, Then: then, Else: els}

	default:
		return s
	}
}
