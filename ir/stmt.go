// Package ir defines the statement/expression tree the lowering passes in
// asyncpipe operate on: a minimal slice of a Halide-style pipeline IR,
// covering only the node kinds those passes inspect or rebuild.
package ir

// Stmt is a statement node: something executed for effect, no value.
//
// Concrete types implement Stmt by defining the unexported isStmt marker
// method, the same closed-interface idiom go/ast uses for Stmt/Expr/Decl.
type Stmt interface {
	isStmt()
}

// Expr is an expression node: something evaluated to a typed value.
type Expr interface {
	isExpr()
}

// LetStmt introduces a scoped binding over Body. The binding is visible
// only within Body.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

// Block sequences First then Rest.
type Block struct {
	First Stmt
	Rest  Stmt
}

// LoopKind describes how a For loop's iterations relate to each other.
type LoopKind int

const (
	LoopSerial LoopKind = iota
	LoopParallel
	LoopVectorized
	LoopUnrolled
)

// DeviceAPI names the execution target of a For loop.
type DeviceAPI int

const (
	DeviceNone DeviceAPI = iota
	DeviceHost
	DeviceGPU
)

// For is a loop over Name from Min for Extent iterations.
type For struct {
	Body     Stmt
	Name     string
	Min      Expr
	Extent   Expr
	LoopKind LoopKind
	Device   DeviceAPI
}

// Range is a single dimension's [Min, Min+Extent) bound, used by Realize
// and Prefetch to describe the region of a buffer they touch.
type Range struct {
	Min    Expr
	Extent Expr
}

// Realize allocates a buffer named Name, sized by Bounds, live for Body's
// duration; the allocation is destroyed when Body exits. Condition, when
// non-nil, guards whether the allocation actually happens (conditional
// realization); it is opaque to this pass.
type Realize struct {
	Body      Stmt
	Condition Expr
	Name      string
	Types     []Type
	Bounds    []Range
}

// ProducerConsumer marks Body as the production (IsProducer) or
// consumption region for the buffer named Name.
type ProducerConsumer struct {
	Body       Stmt
	Name       string
	IsProducer bool
}

// MakeProduce is a convenience constructor matching the spec's
// "ProducerConsumer.make_produce" notation for the producer-side rewrite.
func MakeProduce(name string, body Stmt) Stmt {
	return &ProducerConsumer{Name: name, IsProducer: true, Body: body}
}

// Fork runs First and Rest as concurrent sibling tasks; it completes when
// both complete.
type Fork struct {
	First Stmt
	Rest  Stmt
}

// Acquire blocks until Count permits are available on Semaphore, then runs
// Body. Semaphore must be a *Variable; anything else is an
// internal-invariant violation the pass rejects (spec.md §7).
type Acquire struct {
	Semaphore Expr
	Count     Expr
	Body      Stmt
}

// Evaluate runs Expr for its side effects and discards the result.
// Evaluate(IntImm(0)) is the canonical no-op, see NoOp.
type Evaluate struct {
	Value Expr
}

// Provide writes Values into buffer Name at the coordinates in Args. It is
// a leaf: the pass never recurses into it, only replaces it wholesale.
type Provide struct {
	Name   string
	Args   []Expr
	Values []Expr
}

// AssertStmt checks Condition and fails with Message if it does not hold.
// A leaf, like Provide.
type AssertStmt struct {
	Condition Expr
	Message   Expr
}

// Prefetch hints that the region of buffer Name described by Bounds will
// be used soon. A leaf, like Provide.
type Prefetch struct {
	Condition Expr
	Name      string
	Types     []Type
	Bounds    []Range
}

// IfThenElse runs Then if Condition holds, Else (which may be nil)
// otherwise.
type IfThenElse struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (*LetStmt) isStmt()          {}
func (*Block) isStmt()            {}
func (*For) isStmt()              {}
func (*Realize) isStmt()          {}
func (*ProducerConsumer) isStmt() {}
func (*Fork) isStmt()             {}
func (*Acquire) isStmt()          {}
func (*Evaluate) isStmt()         {}
func (*Provide) isStmt()          {}
func (*AssertStmt) isStmt()       {}
func (*Prefetch) isStmt()         {}
func (*IfThenElse) isStmt()       {}

// NoOp is the canonical null statement, Evaluate(0).
var NoOp Stmt = &Evaluate{Value: &IntImm{Value: 0}}

// IsNoOp reports whether s is structurally the canonical no-op.
func IsNoOp(s Stmt) bool {
	e, ok := s.(*Evaluate)
	if !ok {
		return false
	}
	n, ok := e.Value.(*IntImm)
	return ok && n.Value == 0
}
