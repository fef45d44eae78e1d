package lucidc

// StageInfo is the metadata a pipeline stage exposes to the lowering
// pass — only the Async flag is consulted (spec.md §3, "env").
type StageInfo struct {
	Async bool
}

// Env is the read-only mapping from stage name to stage metadata the
// pass is handed. Lookup is permitted to fail: a Realize naming a stage
// absent from Env is an internal-invariant violation (spec.md §6).
type Env interface {
	StageInfo(name string) (StageInfo, bool)
}

// MapEnv is a map-backed Env, sufficient for tests and the cmd/lucidc
// demo — the pass itself never constructs one.
type MapEnv map[string]StageInfo

// StageInfo implements Env.
func (m MapEnv) StageInfo(name string) (StageInfo, bool) {
	info, ok := m[name]
	return info, ok
}
