package ir

// Default applies the shared no-op-collapsing recursion (spec.md §4.1) to
// s: LetStmt, For, Block, Fork, Realize, and IfThenElse each have their
// child statements run through mutate, then collapse to NoOp if the
// result is trivially empty; every other node kind is returned unchanged,
// since passes handle their own cases before falling back to Default.
//
// Within this module only Collapse calls it; the asyncpipe engine's
// producer/consumer body generators (§4.2.1, §4.2.2) use defaultRewrite,
// an error-returning copy of these rules.
func Default(s Stmt, mutate func(Stmt) Stmt) Stmt {
	switch n := s.(type) {
	case *LetStmt:
		body := mutate(n.Body)
		if IsNoOp(body) {
			return NoOp
		}
		if body == n.Body {
			return n
		}
		return &LetStmt{Name: n.Name, Value: n.Value, Body: body}

	case *For:
		body := mutate(n.Body)
		if IsNoOp(body) {
			return NoOp
		}
		if body == n.Body {
			return n
		}
		return &For{Name: n.Name, Min: n.Min, Extent: n.Extent, LoopKind: n.LoopKind, Device: n.Device, Body: body}

	case *Block:
		first := mutate(n.First)
		rest := mutate(n.Rest)
		firstNoOp, restNoOp := IsNoOp(first), IsNoOp(rest)
		switch {
		case firstNoOp && restNoOp:
			return NoOp
		case firstNoOp:
			return rest
		case restNoOp:
			return first
		case first == n.First && rest == n.Rest:
			return n
		default:
			return &Block{First: first, Rest: rest}
		}

	case *Fork:
		first := mutate(n.First)
		rest := mutate(n.Rest)
		firstNoOp, restNoOp := IsNoOp(first), IsNoOp(rest)
		switch {
		case firstNoOp && restNoOp:
			return NoOp
		case firstNoOp:
			return rest
		case restNoOp:
			return first
		case first == n.First && rest == n.Rest:
			return n
		default:
			return &Fork{First: first, Rest: rest}
		}

	case *Realize:
		body := mutate(n.Body)
		if IsNoOp(body) {
			return NoOp
		}
		if body == n.Body {
			return n
		}
		return &Realize{Name: n.Name, Types: n.Types, Bounds: n.Bounds, Condition: n.Condition, Body: body}

	case *IfThenElse:
		then := mutate(n.Then)
		var els Stmt
		if n.Else != nil {
			els = mutate(n.Else)
		}
		thenNoOp := IsNoOp(then)
		elseNoOp := n.Else == nil || IsNoOp(els)
		if thenNoOp && elseNoOp {
			return NoOp
		}
		if then == n.Then && els == n.Else {
			return n
		}
		return &IfThenElse{Condition: n.Condition, Then: then, Else: els}

	default:
		return s
	}
}

// Collapse runs Default recursively over the whole tree rooted at s,
// applying no collapsing rule beyond what Default itself does at every
// level. It is the identity rewrite with no-op collapsing applied; its
// idempotence (spec.md §8) is tested by TestCollapseIsIdempotent, and
// asyncpipe's round-trip test uses it to build the expected tree.
func Collapse(s Stmt) Stmt {
	return Default(s, Collapse)
}
