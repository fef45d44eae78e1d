package engine

import (
	"github.com/lucidpipe/lucidc/errors"
	"github.com/lucidpipe/lucidc/ir"
)

// sizeofSemaphore is the byte size LowerSemaphores requests from alloca for
// a stack-allocated semaphore handle.
const sizeofSemaphore = 8

// LowerSemaphores replaces every semaphore-pointer LetStmt's
// halide_make_semaphore initializer with a stack allocation plus a runtime
// init call (spec.md §4.6), then asserts no such call survives anywhere
// else in the tree — a survivor means ForkAsyncProducers minted a
// semaphore this stage never bound.
func LowerSemaphores(s ir.Stmt) (ir.Stmt, error) {
	lowered := lowerSemaphores(s)
	if survivors := ir.FindCalls(lowered, ir.HalideMakeSemaphore); len(survivors) > 0 {
		return nil, errors.Invariant(errors.KindStraySemaphore, "halide_make_semaphore",
			"%d halide_make_semaphore call(s) survived lowering", len(survivors))
	}
	return lowered, nil
}

func lowerSemaphores(s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case *ir.LetStmt:
		body := lowerSemaphores(n.Body)
		lets, inner := peelLets(n.Value)
		call, ok := inner.(*ir.Call)
		if !exprType(inner).IsSemaphorePointer() || !ok || call.Name != ir.HalideMakeSemaphore {
			if ir.IsNoOp(body) {
				return ir.NoOp
			}
			if body == n.Body {
				return n
			}
			return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}
		}

		initial := call.Args[0]
		lowered := ir.Stmt(&ir.LetStmt{
			Name:  n.Name,
			Value: &ir.Call{Name: ir.Alloca, Args: []ir.Expr{&ir.IntImm{Value: sizeofSemaphore}}, CallKind: ir.CallIntrinsic, Type: ir.SemaphorePointerType},
			Body: &ir.Block{
				First: &ir.Evaluate{Value: &ir.Call{
					Name:     ir.HalideSemaphoreInit,
					Args:     []ir.Expr{&ir.Variable{Name: n.Name, Type: ir.SemaphorePointerType}, initial},
					CallKind: ir.CallExtern,
				}},
				Rest: body,
			},
		})
		return rewrapLets(lets, lowered)

	case *ir.Block:
		first := lowerSemaphores(n.First)
		rest := lowerSemaphores(n.Rest)
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
		body := lowerSemaphores(n.Body)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *ir.Realize:
		body := lowerSemaphores(n.Body)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: body}

	case *ir.ProducerConsumer:
		body := lowerSemaphores(n.Body)
		if ir.IsNoOp(body) {
			return ir.NoOp
		}
		if body == n.Body {
			return n
		}
		return &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: body}

	case *ir.Fork:
		first := lowerSemaphores(n.First)
		rest := lowerSemaphores(n.Rest)
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
			return &ir.Fork{First: first, Rest: rest}
		}

	case *ir.Acquire:
		body := lowerSemaphores(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}

	case *ir.IfThenElse:
		then := lowerSemaphores(n.Then)
		var els ir.Stmt
		if n.Else != nil {
			els = lowerSemaphores(n.Else)
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

// exprType returns e's declared type where one is attached directly
// (Variable, Call); other expression kinds carry no type of their own.
func exprType(e ir.Expr) ir.Type {
	switch v := e.(type) {
	case *ir.Call:
		return v.Type
	case *ir.Variable:
		return v.Type
	default:
		return ir.Type{}
	}
}

// peelLets strips a chain of expression-level Let wrappers off e, returning
// them outermost-first along with the innermost non-Let expression.
func peelLets(e ir.Expr) ([]*ir.Let, ir.Expr) {
	var lets []*ir.Let
	for {
		l, ok := e.(*ir.Let)
		if !ok {
			return lets, e
		}
		lets = append(lets, l)
		e = l.Body
	}
}

// rewrapLets re-applies lets, in reverse (innermost-first) order, around
// body — undoing peelLets around the rewritten LetStmt.
func rewrapLets(lets []*ir.Let, body ir.Stmt) ir.Stmt {
	if len(lets) == 0 {
		return body
	}
	wrapped := body
	for i := len(lets) - 1; i >= 0; i-- {
		wrapped = &ir.LetStmt{Name: lets[i].Name, Value: lets[i].Value, Body: wrapped}
	}
	return wrapped
}
