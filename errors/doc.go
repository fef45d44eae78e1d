// Package errors provides the structured error type shared by the async
// producer/consumer lowering pass and cmd/lucidc.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (what went wrong). The Error type carries a node path and an optional
// cause chain.
//
// Use the Builder for ad hoc construction:
//
//	err := errors.New(errors.PhaseCLI, errors.KindInvalidInput).
//		Path("flag", "example").
//		Detail("unknown example %q", name).
//		Build()
//
// Or use the convenience constructors (the lowering pass itself raises
// only Invariant errors):
//
//	err := errors.Invariant(errors.KindDuplicateProducer, "f", "produced twice")
//	err := errors.NotFound(errors.PhaseCLI, "example", name)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
