package ir

// Walk traverses s pre-order, calling visit on every statement node in
// the tree including s itself. Unlike Default/Collapse this never
// rewrites anything; it is the read-only walk used by the counting and
// validation helpers (e.g. counting ProducerConsumer consume points,
// checking no halide_make_semaphore call survives lowering).
func Walk(s Stmt, visit func(Stmt)) {
	if s == nil {
		return
	}
	visit(s)
	switch n := s.(type) {
	case *LetStmt:
		Walk(n.Body, visit)
	case *Block:
		Walk(n.First, visit)
		Walk(n.Rest, visit)
	case *For:
		Walk(n.Body, visit)
	case *Realize:
		Walk(n.Body, visit)
	case *ProducerConsumer:
		Walk(n.Body, visit)
	case *Fork:
		Walk(n.First, visit)
		Walk(n.Rest, visit)
	case *Acquire:
		Walk(n.Body, visit)
	case *IfThenElse:
		Walk(n.Then, visit)
		if n.Else != nil {
			Walk(n.Else, visit)
		}
	}
}

// WalkExprs walks s's statement tree with Walk and, at every statement
// node, runs WalkExpr over each expression directly attached to that node,
// so every expression anywhere in the tree is visited (FindCalls is built
// on it).
func WalkExprs(s Stmt, visit func(Expr)) {
	Walk(s, func(n Stmt) {
		for _, e := range stmtExprs(n) {
			WalkExpr(e, visit)
		}
	})
}

func stmtExprs(s Stmt) []Expr {
	switch n := s.(type) {
	case *LetStmt:
		return []Expr{n.Value}
	case *For:
		return []Expr{n.Min, n.Extent}
	case *Realize:
		es := []Expr{n.Condition}
		for _, b := range n.Bounds {
			es = append(es, b.Min, b.Extent)
		}
		return es
	case *Acquire:
		return []Expr{n.Semaphore, n.Count}
	case *Evaluate:
		return []Expr{n.Value}
	case *Provide:
		es := append([]Expr{}, n.Args...)
		return append(es, n.Values...)
	case *AssertStmt:
		return []Expr{n.Condition, n.Message}
	case *Prefetch:
		es := []Expr{n.Condition}
		for _, b := range n.Bounds {
			es = append(es, b.Min, b.Extent)
		}
		return es
	case *IfThenElse:
		return []Expr{n.Condition}
	default:
		return nil
	}
}

// WalkExpr calls visit on e and, recursively, on every sub-expression.
func WalkExpr(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *Let:
		WalkExpr(n.Value, visit)
		WalkExpr(n.Body, visit)
	case *Call:
		for _, a := range n.Args {
			WalkExpr(a, visit)
		}
	}
}

// CountStmts counts the statement nodes in s for which pred returns true.
func CountStmts(s Stmt, pred func(Stmt) bool) int {
	count := 0
	Walk(s, func(n Stmt) {
		if pred(n) {
			count++
		}
	})
	return count
}

// FindCalls returns every Call node reachable from s (through both
// statement-attached expressions and nested statement bodies) whose name
// is one of names.
func FindCalls(s Stmt, names ...string) []*Call {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	var found []*Call
	WalkExprs(s, func(e Expr) {
		if c, ok := e.(*Call); ok && set[c.Name] {
			found = append(found, c)
		}
	})
	return found
}
