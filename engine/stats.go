package engine

// SearchStats describes one completed Search call. A fresh value is built per
// call and is always fully populated before Search returns, early exits
// included.
type SearchStats struct {
	Phase           SearchPhase
	Nodes           uint64
	TimeMs          int64
	Entropy         float64
	BranchingFactor float64
	Depth           int
	TablebaseProbes int
}

// DiagnosticsSnapshot is a read-only view of the orchestrator after its most
// recent Search call, for external monitoring. Weights is a copy; mutating it
// has no effect on the engine.
type DiagnosticsSnapshot struct {
	Phase             SearchPhase
	Nodes             uint64
	TimeMs            int64
	Entropy           float64
	BranchingFactor   float64
	Depth             int
	TablebaseProbes   int
	Weights           BranchingWeights
	EntropyHistoryLen int
}
