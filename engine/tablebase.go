package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// StubTablebase is the placeholder prober used until real tablebase files
// are wired in: every probe misses. Callers already treat a miss as the
// normal outcome, so swapping in a real prober later changes no control
// flow.
type StubTablebase struct{}

func (StubTablebase) Probe(b *dragontoothmg.Board) (SearchResult, bool) {
	return SearchResult{}, false
}

// MaxPieces reports the largest piece count this prober could ever answer.
func (StubTablebase) MaxPieces() int { return 0 }

// Available reports whether any tablebase data is loaded.
func (StubTablebase) Available() bool { return false }
