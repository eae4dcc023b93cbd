package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// SearchPhase selects which search strategy handles the current position.
// The set is closed; dispatch in the orchestrator switches over it exhaustively.
type SearchPhase uint8

const (
	PhaseOpening SearchPhase = iota
	PhaseMiddlegame
	PhaseEndgame
	PhaseTablebase
)

func (p SearchPhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseMiddlegame:
		return "middlegame"
	case PhaseEndgame:
		return "endgame"
	case PhaseTablebase:
		return "tablebase"
	}
	return "unknown"
}

// Material thresholds for the phase boundaries. These are calibrated as a
// set; do not tune them independently.
const (
	openingMaterialFloor    = 35
	middlegameMaterialFloor = 20
	openingFullmoveCeiling  = 12
)

// CountPieces returns the total number of pieces of both sides, kings included.
func CountPieces(b *dragontoothmg.Board) int {
	return bits.OnesCount64(b.White.All) + bits.OnesCount64(b.Black.All)
}

// phaseMaterial weighs both sides' pieces as 9*Q + 5*R + 3*(N+B). Pawns and
// kings carry no phase weight.
func phaseMaterial(b *dragontoothmg.Board) int {
	queens := bits.OnesCount64(b.White.Queens | b.Black.Queens)
	rooks := bits.OnesCount64(b.White.Rooks | b.Black.Rooks)
	minors := bits.OnesCount64(b.White.Knights | b.Black.Knights | b.White.Bishops | b.Black.Bishops)
	return 9*queens + 5*rooks + 3*minors
}

// ClassifyPhase maps a position to its search phase. Pure and deterministic:
// the same position and threshold always produce the same phase.
func ClassifyPhase(b *dragontoothmg.Board, tablebasePieceThreshold int) SearchPhase {
	if CountPieces(b) <= tablebasePieceThreshold {
		return PhaseTablebase
	}

	material := phaseMaterial(b)
	if int(b.Fullmoveno) <= openingFullmoveCeiling && material > openingMaterialFloor {
		return PhaseOpening
	}
	if material > middlegameMaterialFloor {
		return PhaseMiddlegame
	}
	return PhaseEndgame
}
