package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/lucidpipe/lucidc/asyncpipe"
	lucidcerrors "github.com/lucidpipe/lucidc/errors"
	"github.com/lucidpipe/lucidc/ir"
	"github.com/xyproto/env/v2"
	"go.uber.org/zap"
)

func main() {
	var (
		exampleName = flag.String("example", "single-consume", "Named example pipeline to lower")
		list        = flag.Bool("list", false, "List available examples and exit")
		inspect     = flag.Bool("inspect", false, "Launch the interactive tree inspector instead of printing")
		strict      = flag.Bool("strict", false, "Re-validate the lowered tree (asyncpipe.Config.Strict)")
	)
	flag.Parse()

	if env.Str("LUCIDC_LOG_LEVEL", "") == "debug" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		asyncpipe.SetLogger(logger)
	}

	if *list {
		names := make([]string, 0, len(examples))
		for name := range examples {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("Available examples:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	build, ok := examples[*exampleName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Usage: lucidc -example <name> [-inspect] [-strict]\n")
		fmt.Fprintf(os.Stderr, "       lucidc -list\n")
		os.Exit(1)
	}
	ex := build()

	before := ex.tree
	after, err := asyncpipe.Lower(before, ex.env, asyncpipe.Config{Strict: *strict})
	if err != nil {
		reportAndExit(err)
	}

	if *inspect {
		if err := runInspector(ex.name, before, after); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("=== %s: before ===\n%s\n", ex.name, ir.Sprint(before))
	fmt.Printf("=== %s: after ===\n%s\n", ex.name, ir.Sprint(after))
}

// reportAndExit prints a structured *errors.Error the same way the pass
// itself treats it: an internal-invariant violation, never recovered from.
func reportAndExit(err error) {
	var e *lucidcerrors.Error
	if stderrors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", e.Error())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
