package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// Evaluator scores a position statically, in centipawns from the side to
// move's perspective (positive favors the mover).
type Evaluator interface {
	Evaluate(b *dragontoothmg.Board) int
}

// SearchResult is the uniform result shape shared by all searchers.
//
// Value is in pawn units from the side to move's perspective; both searcher
// families report on the same scale so their scores can be compared and
// blended directly. The zero Move plus HasMove == false signals a terminal
// position (or a searcher that failed to produce a move).
type SearchResult struct {
	Move            dragontoothmg.Move
	HasMove         bool
	Value           float64
	Nodes           uint64
	Depth           int
	BranchingFactor float64
}

// TacticalParams configures a single tactical (alpha-beta) search.
type TacticalParams struct {
	MaxDepth           int
	Quiescence         bool
	LateMoveReductions bool
	NullMovePruning    bool
	Evaluator          Evaluator
	// Weights, when non-nil, scale the move-ordering heuristics for this
	// call only. The searcher never mutates them.
	Weights *BranchingWeights
}

// ExploratoryParams configures a single exploratory (MCTS) search.
type ExploratoryParams struct {
	Simulations int
	Exploration float64
	AddNoise    bool
}

// TacticalSearcher is the depth-first collaborator. timeLimitMs <= 0 means
// no time limit; the limit is soft, polled by the searcher itself.
type TacticalSearcher interface {
	Search(b *dragontoothmg.Board, timeLimitMs int, params TacticalParams) (SearchResult, error)
}

// ExploratorySearcher is the breadth-first collaborator.
type ExploratorySearcher interface {
	Search(b *dragontoothmg.Board, timeLimitMs int, params ExploratoryParams) (SearchResult, error)
}

// TablebaseProber answers exact-lookup requests for low-piece positions.
// A miss (ok == false) is the normal steady-state outcome, not an error.
type TablebaseProber interface {
	Probe(b *dragontoothmg.Board) (result SearchResult, ok bool)
}
