package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

var centerManhattanDistance = [64]int{
	6, 5, 4, 3, 3, 4, 5, 6,
	5, 4, 3, 2, 2, 3, 4, 5,
	4, 3, 2, 1, 1, 2, 3, 4,
	3, 2, 1, 0, 0, 1, 2, 3,
	3, 2, 1, 0, 0, 1, 2, 3,
	4, 3, 2, 1, 1, 2, 3, 4,
	5, 4, 3, 2, 2, 3, 4, 5,
	6, 5, 4, 3, 3, 4, 5, 6,
}

// Bonus for a passed pawn by its rank from the owner's side. Rank 0 and 7
// hold no pawns.
var passedPawnRankBonus = [8]int{0, 10, 20, 35, 60, 100, 160, 0}

const kingCentralizationWeight = 10

// isPassedPawn reports whether no enemy pawn on the same or adjacent file
// can still block or capture the pawn on sq.
func isPassedPawn(sq int, white bool, enemyPawns uint64) bool {
	file := sq % 8
	rank := sq / 8

	var span uint64
	if white {
		for r := rank + 1; r < 8; r++ {
			for f := Max(file-1, 0); f <= Min(file+1, 7); f++ {
				span |= 1 << (r*8 + f)
			}
		}
	} else {
		for r := rank - 1; r >= 0; r-- {
			for f := Max(file-1, 0); f <= Min(file+1, 7); f++ {
				span |= 1 << (r*8 + f)
			}
		}
	}
	return span&enemyPawns == 0
}

// EndgameEvaluator trades the middlegame heuristics for what decides simple
// endings: endgame material, an active centralized king, and pushed passers.
// Centipawns, side to move.
type EndgameEvaluator struct{}

func (EndgameEvaluator) Evaluate(b *dragontoothmg.Board) int {
	var score int

	for _, piece := range evalPieceList {
		score += pieceValueEG[piece] * bits.OnesCount64(pieceBitboard(&b.White, piece))
		score -= pieceValueEG[piece] * bits.OnesCount64(pieceBitboard(&b.Black, piece))
	}

	// King activity: being near the center is worth fighting for once the
	// queens are off.
	whiteKing := bits.TrailingZeros64(b.White.Kings)
	blackKing := bits.TrailingZeros64(b.Black.Kings)
	score -= centerManhattanDistance[whiteKing] * kingCentralizationWeight
	score += centerManhattanDistance[blackKing] * kingCentralizationWeight

	whitePawns := b.White.Pawns
	for whitePawns != 0 {
		sq := bits.TrailingZeros64(whitePawns)
		whitePawns &= whitePawns - 1
		if isPassedPawn(sq, true, b.Black.Pawns) {
			score += passedPawnRankBonus[sq/8]
		}
	}
	blackPawns := b.Black.Pawns
	for blackPawns != 0 {
		sq := bits.TrailingZeros64(blackPawns)
		blackPawns &= blackPawns - 1
		if isPassedPawn(sq, false, b.White.Pawns) {
			score -= passedPawnRankBonus[7-sq/8]
		}
	}

	if !b.Wtomove {
		score = -score
	}
	return score
}
