package engine

import (
	lucidc "github.com/lucidpipe/lucidc"
	"github.com/lucidpipe/lucidc/ir"
	"go.uber.org/zap"
)

// Run applies the fixed five-stage pipeline of spec.md §2 to s in order,
// logging at debug level, after each stage, the number of statement nodes
// in the tree that stage returned.
func Run(s ir.Stmt, env lucidc.Env) (ir.Stmt, error) {
	log := Logger()

	s = TightenConsumeRegions(s)
	log.Debug("tighten-consume-regions", zap.Int("nodes", countNodes(s)))

	s, err := ForkAsyncProducers(s, env)
	if err != nil {
		return nil, err
	}
	log.Debug("fork-async-producers", zap.Int("nodes", countNodes(s)))

	s = ExpandAcquireNodes(s)
	log.Debug("expand-acquire-nodes", zap.Int("nodes", countNodes(s)))

	s = TightenForkNodes(s)
	log.Debug("tighten-fork-nodes", zap.Int("nodes", countNodes(s)))

	s, err = LowerSemaphores(s)
	if err != nil {
		return nil, err
	}
	log.Debug("lower-semaphores", zap.Int("nodes", countNodes(s)))

	return s, nil
}

func countNodes(s ir.Stmt) int {
	return ir.CountStmts(s, func(ir.Stmt) bool { return true })
}
