package ir

import (
	"fmt"
	"io"
	"strings"
)

// Sprint renders s as an indented, human-readable tree. It is used by
// asyncpipe's tests to diff before/after trees with cmp.Diff instead of a
// bespoke deep-equal walker, and by cmd/lucidc to show a pipeline before
// and after lowering.
func Sprint(s Stmt) string {
	var b strings.Builder
	Fprint(&b, s)
	return b.String()
}

// SprintExpr renders e as a single-line expression.
func SprintExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// Fprint writes s to w the same way Sprint does.
func Fprint(w io.Writer, s Stmt) {
	p := &printer{w: w}
	p.stmt(s, 0)
}

type printer struct {
	w io.Writer
}

func (p *printer) indent(depth int) {
	fmt.Fprint(p.w, strings.Repeat("  ", depth))
}

func (p *printer) stmt(s Stmt, depth int) {
	if s == nil {
		p.indent(depth)
		fmt.Fprintln(p.w, "<nil>")
		return
	}
	switch n := s.(type) {
	case *LetStmt:
		p.indent(depth)
		fmt.Fprintf(p.w, "let %s = %s\n", n.Name, SprintExpr(n.Value))
		p.stmt(n.Body, depth)

	case *Block:
		p.stmt(n.First, depth)
		p.stmt(n.Rest, depth)

	case *For:
		p.indent(depth)
		fmt.Fprintf(p.w, "for %s in [%s, %s) %s %s:\n", n.Name, SprintExpr(n.Min), SprintExpr(n.Extent), loopKindName(n.LoopKind), deviceName(n.Device))
		p.stmt(n.Body, depth+1)

	case *Realize:
		p.indent(depth)
		fmt.Fprintf(p.w, "realize %s:\n", n.Name)
		p.stmt(n.Body, depth+1)

	case *ProducerConsumer:
		p.indent(depth)
		role := "consume"
		if n.IsProducer {
			role = "produce"
		}
		fmt.Fprintf(p.w, "%s %s:\n", role, n.Name)
		p.stmt(n.Body, depth+1)

	case *Fork:
		p.indent(depth)
		fmt.Fprintln(p.w, "fork:")
		p.indent(depth + 1)
		fmt.Fprintln(p.w, "task:")
		p.stmt(n.First, depth+2)
		p.indent(depth + 1)
		fmt.Fprintln(p.w, "task:")
		p.stmt(n.Rest, depth+2)

	case *Acquire:
		p.indent(depth)
		fmt.Fprintf(p.w, "acquire(%s, %s):\n", SprintExpr(n.Semaphore), SprintExpr(n.Count))
		p.stmt(n.Body, depth+1)

	case *Evaluate:
		p.indent(depth)
		fmt.Fprintf(p.w, "evaluate(%s)\n", SprintExpr(n.Value))

	case *Provide:
		p.indent(depth)
		fmt.Fprintf(p.w, "provide %s(%s) = %s\n", n.Name, joinExprs(n.Args), joinExprs(n.Values))

	case *AssertStmt:
		p.indent(depth)
		fmt.Fprintf(p.w, "assert(%s, %s)\n", SprintExpr(n.Condition), SprintExpr(n.Message))

	case *Prefetch:
		p.indent(depth)
		fmt.Fprintf(p.w, "prefetch %s\n", n.Name)

	case *IfThenElse:
		p.indent(depth)
		fmt.Fprintf(p.w, "if %s:\n", SprintExpr(n.Condition))
		p.stmt(n.Then, depth+1)
		if n.Else != nil {
			p.indent(depth)
			fmt.Fprintln(p.w, "else:")
			p.stmt(n.Else, depth+1)
		}

	default:
		p.indent(depth)
		fmt.Fprintf(p.w, "<unknown stmt %T>\n", n)
	}
}

func writeExpr(b *strings.Builder, e Expr) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch n := e.(type) {
	case *Variable:
		b.WriteString(n.Name)
	case *IntImm:
		fmt.Fprintf(b, "%d", n.Value)
	case *Let:
		fmt.Fprintf(b, "(let %s = %s in %s)", n.Name, SprintExpr(n.Value), SprintExpr(n.Body))
	case *Call:
		fmt.Fprintf(b, "%s(%s)", n.Name, joinExprs(n.Args))
	default:
		fmt.Fprintf(b, "<unknown expr %T>", n)
	}
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = SprintExpr(e)
	}
	return strings.Join(parts, ", ")
}

func loopKindName(k LoopKind) string {
	switch k {
	case LoopParallel:
		return "parallel"
	case LoopVectorized:
		return "vectorized"
	case LoopUnrolled:
		return "unrolled"
	default:
		return "serial"
	}
}

func deviceName(d DeviceAPI) string {
	switch d {
	case DeviceHost:
		return "host"
	case DeviceGPU:
		return "gpu"
	default:
		return "none"
	}
}
