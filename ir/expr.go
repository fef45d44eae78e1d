package ir

// TypeCode is the coarse kind of a Type.
type TypeCode int

const (
	TypeInt TypeCode = iota
	TypeUInt
	TypeFloat
	TypeHandle
)

// Type is a minimal value-type descriptor: enough to recognize a
// semaphore-pointer binding (§4.6) and to carry through Realize/Prefetch
// buffer element types. Handle names the pointee for TypeHandle values,
// mirroring Halide's handle_type.inner_name.
type Type struct {
	Code   TypeCode
	Bits   int
	Lanes  int
	Handle string
}

// SemaphoreHandle is the Handle name LowerSemaphores looks for when
// deciding whether a LetStmt's declared type is a semaphore pointer.
const SemaphoreHandle = "halide_semaphore_t"

// SemaphorePointerType is the type of a semaphore handle variable.
var SemaphorePointerType = Type{Code: TypeHandle, Bits: 64, Lanes: 1, Handle: SemaphoreHandle}

// IsSemaphorePointer reports whether t is a semaphore-pointer type.
func (t Type) IsSemaphorePointer() bool {
	return t.Code == TypeHandle && t.Handle == SemaphoreHandle
}

// Variable is a reference to a named, previously bound value.
type Variable struct {
	Name string
	Type Type
}

// Let introduces an expression-level binding over Body, distinct from the
// statement-level LetStmt. LowerSemaphores peels a chain of these off a
// semaphore initializer before inspecting it (§4.6).
type Let struct {
	Value Expr
	Body  Expr
	Name  string
}

// CallKind distinguishes how a Call should be resolved.
type CallKind int

const (
	CallIntrinsic   CallKind = iota // resolved by this pass / codegen, never emitted as a symbol
	CallExtern                      // resolved at link time, may have side effects
	CallPureExtern                  // resolved at link time, side-effect free
)

// Recognized intrinsic/extern call names (spec.md §3, §6).
const (
	HalideSemaphoreInit    = "halide_semaphore_init"
	HalideSemaphoreRelease = "halide_semaphore_release"
	HalideMakeSemaphore    = "halide_make_semaphore"
	Alloca                 = "alloca"
)

// Call invokes Name with Args. CallKind records how it should be resolved
// downstream; this pass only cares about Name.
type Call struct {
	Name     string
	Args     []Expr
	CallKind CallKind
	Type     Type
}

// IntImm is a literal integer constant.
type IntImm struct {
	Value int64
}

func (*Variable) isExpr() {}
func (*Let) isExpr()      {}
func (*Call) isExpr()     {}
func (*IntImm) isExpr()   {}

// MakeSemaphore builds the synthetic make_semaphore(n) expression
// ForkAsyncProducers binds every minted semaphore to.
func MakeSemaphore(initial int64) Expr {
	return &Call{
		Name:     HalideMakeSemaphore,
		Args:     []Expr{&IntImm{Value: initial}},
		CallKind: CallIntrinsic,
		Type:     SemaphorePointerType,
	}
}

// SemaphoreRelease builds Evaluate(halide_semaphore_release(sem, count)).
func SemaphoreRelease(semaphore string, count int64) Stmt {
	return &Evaluate{Value: &Call{
		Name:     HalideSemaphoreRelease,
		Args:     []Expr{&Variable{Name: semaphore, Type: SemaphorePointerType}, &IntImm{Value: count}},
		CallKind: CallExtern,
	}}
}
