package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Tapered material values, indexed by dragontoothmg.Piece.
var pieceValueMG = [7]int{0, 100, 320, 330, 500, 900, 0}
var pieceValueEG = [7]int{0, 120, 300, 320, 530, 950, 0}

// Piece-square tables from white's perspective, a1 = index 0. Black mirrors
// vertically. The king has separate middlegame and endgame tables; the rest
// share one.
var psqt = [7][64]int{
	dragontoothmg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	dragontoothmg.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	dragontoothmg.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	dragontoothmg.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

var kingPsqtEG = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

const tempoBonus = 10

// maxPiecePhase is the phase value of the full starting material.
const maxPiecePhase = 24

// GetPiecePhase grades remaining material into [0, 24]: 24 with all pieces
// on the board, 0 with bare kings and pawns.
func GetPiecePhase(b *dragontoothmg.Board) int {
	queens := bits.OnesCount64(b.White.Queens | b.Black.Queens)
	rooks := bits.OnesCount64(b.White.Rooks | b.Black.Rooks)
	minors := bits.OnesCount64(b.White.Knights | b.Black.Knights | b.White.Bishops | b.Black.Bishops)
	return Min(4*queens+2*rooks+minors, maxPiecePhase)
}

var evalPieceList = [6]dragontoothmg.Piece{
	dragontoothmg.Pawn,
	dragontoothmg.Knight,
	dragontoothmg.Bishop,
	dragontoothmg.Rook,
	dragontoothmg.Queen,
	dragontoothmg.King,
}

func pieceBitboard(bb *dragontoothmg.Bitboards, piece dragontoothmg.Piece) uint64 {
	switch piece {
	case dragontoothmg.Pawn:
		return bb.Pawns
	case dragontoothmg.Knight:
		return bb.Knights
	case dragontoothmg.Bishop:
		return bb.Bishops
	case dragontoothmg.Rook:
		return bb.Rooks
	case dragontoothmg.Queen:
		return bb.Queens
	case dragontoothmg.King:
		return bb.Kings
	}
	return 0
}

// ClassicalEvaluator is the default leaf evaluator: tapered material plus
// piece-square tables plus a tempo nudge. Centipawns, side to move.
type ClassicalEvaluator struct{}

func (ClassicalEvaluator) Evaluate(b *dragontoothmg.Board) int {
	var mg, eg int

	for _, piece := range evalPieceList {
		whiteBB := pieceBitboard(&b.White, piece)
		for whiteBB != 0 {
			sq := bits.TrailingZeros64(whiteBB)
			whiteBB &= whiteBB - 1
			mg += pieceValueMG[piece] + psqt[piece][sq]
			if piece == dragontoothmg.King {
				eg += pieceValueEG[piece] + kingPsqtEG[sq]
			} else {
				eg += pieceValueEG[piece] + psqt[piece][sq]
			}
		}

		blackBB := pieceBitboard(&b.Black, piece)
		for blackBB != 0 {
			sq := bits.TrailingZeros64(blackBB) ^ 56 // vertical mirror
			blackBB &= blackBB - 1
			mg -= pieceValueMG[piece] + psqt[piece][sq]
			if piece == dragontoothmg.King {
				eg -= pieceValueEG[piece] + kingPsqtEG[sq]
			} else {
				eg -= pieceValueEG[piece] + psqt[piece][sq]
			}
		}
	}

	phase := GetPiecePhase(b)
	score := (mg*phase + eg*(maxPiecePhase-phase)) / maxPiecePhase

	if !b.Wtomove {
		score = -score
	}
	return score + tempoBonus
}
