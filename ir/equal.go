package ir

// ExprEqual reports whether a and b are syntactically identical
// expressions. Used by TightenForkNodes' first rule, which only hoists a
// binding shared by both fork children when their initializer
// expressions are exactly the same (spec.md §4.5, rule 1).
func ExprEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name && x.Type == y.Type
	case *IntImm:
		y, ok := b.(*IntImm)
		return ok && x.Value == y.Value
	case *Let:
		y, ok := b.(*Let)
		return ok && x.Name == y.Name && ExprEqual(x.Value, y.Value) && ExprEqual(x.Body, y.Body)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Name != y.Name || x.CallKind != y.CallKind || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !ExprEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
