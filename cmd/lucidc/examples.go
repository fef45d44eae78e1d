package main

import (
	lucidc "github.com/lucidpipe/lucidc"
	"github.com/lucidpipe/lucidc/ir"
)

// example bundles a pipeline tree with the Env its stages resolve against,
// mirroring how the teacher's examples/basic/main.go builds a fixed
// component in Go instead of reading one from disk.
type example struct {
	name string
	tree ir.Stmt
	env  lucidc.MapEnv
}

func use(name string) ir.Stmt {
	return &ir.Evaluate{Value: &ir.Call{Name: "use_" + name, CallKind: ir.CallExtern}}
}

func provide(name string) ir.Stmt {
	return &ir.Provide{Name: name}
}

var examples = map[string]func() example{
	"single-consume": func() example {
		tree := &ir.Realize{
			Name: "f",
			Body: &ir.Block{
				First: ir.MakeProduce("f", provide("f")),
				Rest:  &ir.ProducerConsumer{Name: "f", IsProducer: false, Body: use("f")},
			},
		}
		return example{name: "single-consume", tree: tree, env: lucidc.MapEnv{"f": {Async: true}}}
	},

	"folding-semaphore": func() example {
		folding := &ir.Variable{Name: "f.folding_semaphore.0", Type: ir.SemaphorePointerType}
		tree := &ir.Realize{
			Name: "f",
			Body: &ir.Block{
				First: ir.MakeProduce("f", &ir.Acquire{Semaphore: folding, Count: &ir.IntImm{Value: 1}, Body: provide("f")}),
				Rest:  &ir.ProducerConsumer{Name: "f", IsProducer: false, Body: use("f")},
			},
		}
		return example{name: "folding-semaphore", tree: tree, env: lucidc.MapEnv{"f": {Async: true}}}
	},

	"nested-async": func() example {
		// g's own produce and consume markers sit inside f's body, but
		// outside f's own produce/consume regions, underneath an Acquire f
		// and g share. That places g's consume region where f's rewrite
		// sees it too (not just its produce region), and the shared
		// semaphore isn't a folding one, so f's producer half clones it
		// (spec.md §8 scenario 4).
		shared := &ir.Variable{Name: "s", Type: ir.SemaphorePointerType}
		inner := &ir.Realize{
			Name: "g",
			Body: &ir.Block{
				First: ir.MakeProduce("g", provide("g")),
				Rest:  &ir.ProducerConsumer{Name: "g", IsProducer: false, Body: use("g")},
			},
		}
		tree := &ir.Realize{
			Name: "f",
			Body: &ir.Block{
				First: ir.MakeProduce("f", provide("f")),
				Rest: &ir.Block{
					First: &ir.Acquire{Semaphore: shared, Count: &ir.IntImm{Value: 1}, Body: inner},
					Rest:  &ir.ProducerConsumer{Name: "f", IsProducer: false, Body: use("f")},
				},
			},
		}
		return example{name: "nested-async", tree: tree, env: lucidc.MapEnv{"f": {Async: true}, "g": {Async: true}}}
	},
}
