package engine

import "github.com/lucidpipe/lucidc/ir"

// TightenConsumeRegions narrows ProducerConsumer(name, is_producer=false, …)
// markers so the region marked as consuming a buffer is as small as
// possible (spec.md §4.3). Producer markers are left alone: the source
// pass has a disabled branch that would narrow them symmetrically, and the
// conservative choice here is to not reintroduce it.
func TightenConsumeRegions(s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case *ir.ProducerConsumer:
		body := TightenConsumeRegions(n.Body)
		if n.IsProducer {
			if body == n.Body {
				return n
			}
			return &ir.ProducerConsumer{Name: n.Name, IsProducer: true, Body: body}
		}
		return narrow(n.Name, false, body)

	case *ir.LetStmt:
		body := TightenConsumeRegions(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: body}

	case *ir.Block:
		first := TightenConsumeRegions(n.First)
		rest := TightenConsumeRegions(n.Rest)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Block{First: first, Rest: rest}

	case *ir.For:
		body := TightenConsumeRegions(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *ir.Realize:
		body := TightenConsumeRegions(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: body}

	case *ir.Fork:
		first := TightenConsumeRegions(n.First)
		rest := TightenConsumeRegions(n.Rest)
		if first == n.First && rest == n.Rest {
			return n
		}
		return &ir.Fork{First: first, Rest: rest}

	case *ir.Acquire:
		body := TightenConsumeRegions(n.Body)
		if body == n.Body {
			return n
		}
		return &ir.Acquire{Semaphore: n.Semaphore, Count: n.Count, Body: body}

	case *ir.IfThenElse:
		then := TightenConsumeRegions(n.Then)
		var els ir.Stmt
		if n.Else != nil {
			els = TightenConsumeRegions(n.Else)
		}
		if then == n.Then && els == n.Else {
			return n
		}
		return &ir.IfThenElse{Condition: n.Condition, Then: then, Else: els}

	default:
		return s
	}
}

// narrow implements spec.md §4.3's recursive narrowing for a single marker
// (name, is_producer, s), pushing the ProducerConsumer wrapper as deep into
// s as it can go. A block both halves of which reference the buffer is
// split and each half narrowed for a consume marker; for a produce marker
// it is wrapped whole.
func narrow(name string, isProducer bool, s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case *ir.LetStmt:
		return &ir.LetStmt{Name: n.Name, Value: n.Value, Body: narrow(name, isProducer, n.Body)}

	case *ir.Block:
		firstUses := ir.UsesAnyName(n.First, name, name+".buffer")
		restUses := ir.UsesAnyName(n.Rest, name, name+".buffer")
		switch {
		case firstUses && restUses:
			if isProducer {
				return &ir.ProducerConsumer{Name: name, IsProducer: isProducer, Body: n}
			}
			return &ir.Block{First: narrow(name, isProducer, n.First), Rest: narrow(name, isProducer, n.Rest)}
		case firstUses:
			return &ir.Block{First: narrow(name, isProducer, n.First), Rest: n.Rest}
		case restUses:
			return &ir.Block{First: n.First, Rest: narrow(name, isProducer, n.Rest)}
		default:
			return n
		}

	case *ir.ProducerConsumer:
		return &ir.ProducerConsumer{Name: n.Name, IsProducer: n.IsProducer, Body: narrow(name, isProducer, n.Body)}

	case *ir.Realize:
		return &ir.Realize{Name: n.Name, Condition: n.Condition, Types: n.Types, Bounds: n.Bounds, Body: narrow(name, isProducer, n.Body)}

	default:
		return &ir.ProducerConsumer{Name: name, IsProducer: isProducer, Body: s}
	}
}
