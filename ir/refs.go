package ir

// UsesAnyName reports whether s mentions any of names as a Variable,
// anywhere in its tree — bindings, conditions, buffer bounds, acquire
// semaphores, everything — or as the buffer name of a ProducerConsumer,
// Provide or Prefetch. The name a LetStmt or Realize itself binds does not
// count. It ignores shadowing: a LetStmt that rebinds
// one of names still counts as a reference in its own Value expression
// and, conservatively, in its Body, since every caller of this helper
// (TightenConsumeRegions' block split, ExpandAcquireNodes' hoist guard,
// TightenForkNodes' dead-binding check) only ever asks about names that
// are never rebound inside the subtree it is checking.
func UsesAnyName(s Stmt, names ...string) bool {
	if s == nil || len(names) == 0 {
		return false
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return stmtUses(s, set)
}

// UsesName is UsesAnyName for a single name.
func UsesName(s Stmt, name string) bool {
	return UsesAnyName(s, name)
}

// ExprUsesAnyName is UsesAnyName for expressions.
func ExprUsesAnyName(e Expr, names ...string) bool {
	if e == nil || len(names) == 0 {
		return false
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return exprUses(e, set)
}

func stmtUses(s Stmt, names map[string]bool) bool {
	switch n := s.(type) {
	case nil:
		return false
	case *LetStmt:
		return exprUses(n.Value, names) || stmtUses(n.Body, names)
	case *Block:
		return stmtUses(n.First, names) || stmtUses(n.Rest, names)
	case *For:
		return exprUses(n.Min, names) || exprUses(n.Extent, names) || stmtUses(n.Body, names)
	case *Realize:
		return exprUses(n.Condition, names) || rangesUse(n.Bounds, names) || stmtUses(n.Body, names)
	case *ProducerConsumer:
		return names[n.Name] || stmtUses(n.Body, names)
	case *Fork:
		return stmtUses(n.First, names) || stmtUses(n.Rest, names)
	case *Acquire:
		return exprUses(n.Semaphore, names) || exprUses(n.Count, names) || stmtUses(n.Body, names)
	case *Evaluate:
		return exprUses(n.Value, names)
	case *Provide:
		return names[n.Name] || exprSliceUses(n.Args, names) || exprSliceUses(n.Values, names)
	case *AssertStmt:
		return exprUses(n.Condition, names) || exprUses(n.Message, names)
	case *Prefetch:
		return names[n.Name] || exprUses(n.Condition, names) || rangesUse(n.Bounds, names)
	case *IfThenElse:
		return exprUses(n.Condition, names) || stmtUses(n.Then, names) || stmtUses(n.Else, names)
	default:
		return false
	}
}

func exprUses(e Expr, names map[string]bool) bool {
	switch n := e.(type) {
	case nil:
		return false
	case *Variable:
		return names[n.Name]
	case *Let:
		return exprUses(n.Value, names) || exprUses(n.Body, names)
	case *Call:
		return exprSliceUses(n.Args, names)
	case *IntImm:
		return false
	default:
		return false
	}
}

func exprSliceUses(es []Expr, names map[string]bool) bool {
	for _, e := range es {
		if exprUses(e, names) {
			return true
		}
	}
	return false
}

func rangesUse(rs []Range, names map[string]bool) bool {
	for _, r := range rs {
		if exprUses(r.Min, names) || exprUses(r.Extent, names) {
			return true
		}
	}
	return false
}
