// Package lucidc is the root of a small image-processing pipeline
// compiler, of which this repository implements one pass: lowering
// `async` pipeline stages into task-parallel producer/consumer halves
// coordinated by counting semaphores.
//
// # Architecture Overview
//
//	lucidc/                Root package: StageInfo/Env, the seam to the
//	                        surrounding compiler (parser, scheduler, other
//	                        lowering passes, codegen) this module treats
//	                        as an external collaborator.
//	├── ir/                 Statement/expression tree the pass rewrites.
//	├── asyncpipe/           Public facade: Lower(stmt, env, cfg).
//	│   └── internal/engine/ The five lowering stages plus shared traversal
//	│                        and error helpers.
//	└── errors/             Structured error type for internal-invariant
//	                        violations.
//
// # Quick Start
//
//	env := lucidc.MapEnv{"blur": {Async: true}}
//	lowered, err := asyncpipe.Lower(stmt, env, asyncpipe.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ir.Sprint(lowered))
//
// # Scope
//
// The pass is purely a tree rewrite: it does not allocate memory, emit
// target code, or evaluate the pipeline. Thread scheduling, semaphore
// fairness, and cross-function analysis are the surrounding compiler's
// concern, not this module's.
package lucidc
