package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

type scoredMove struct {
	move  dragontoothmg.Move
	score int32
}

type moveList struct {
	moves []scoredMove
}

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]int32{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

/*
	Move ordering offsets.
	- TT/PV moves first; they either guide us down the best line or let us
	  fail high immediately.
	- Promotions and captures above everything quiet.
	- Checks above plain quiet moves, then killers and counters, then history
	  seasoned with the center/development nudges.
	The branching weights scale each heuristic's contribution, so a drifted
	weight reorders within a band without jumping the ladder.
*/
const (
	pvOffset        int32 = 25000
	promotionOffset int32 = 20000
	captureOffset   int32 = 15000
	checkOffset     int32 = 4000
	killerOffset    int32 = 2000
	counterOffset   int32 = 1000

	centerSquareBonus int32 = 250
	developmentBonus  int32 = 150
)

// e4, d4, e5, d5
const centerMask uint64 = 0x0000001818000000

// Minor-piece home squares: b1 g1 c1 f1 and the black mirrors.
const (
	whiteMinorHomeMask uint64 = 1<<1 | 1<<2 | 1<<5 | 1<<6
	blackMinorHomeMask uint64 = 1<<57 | 1<<58 | 1<<61 | 1<<62
)

// GetPieceTypeAtPosition returns what piece type sits on a square of the
// given side's bitboards, if any.
func GetPieceTypeAtPosition(position uint8, bitboards *dragontoothmg.Bitboards) (pieceType dragontoothmg.Piece, occupied bool) {
	if bitboards.Pawns&(1<<position) > 0 {
		return dragontoothmg.Pawn, true
	} else if bitboards.Knights&(1<<position) > 0 {
		return dragontoothmg.Knight, true
	} else if bitboards.Bishops&(1<<position) > 0 {
		return dragontoothmg.Bishop, true
	} else if bitboards.Rooks&(1<<position) > 0 {
		return dragontoothmg.Rook, true
	} else if bitboards.Queens&(1<<position) > 0 {
		return dragontoothmg.Queen, true
	} else if bitboards.Kings&(1<<position) > 0 {
		return dragontoothmg.King, true
	}
	return 0, false
}

func sideBitboards(b *dragontoothmg.Board) (own, opp *dragontoothmg.Bitboards) {
	if b.Wtomove {
		return &b.White, &b.Black
	}
	return &b.Black, &b.White
}

func sideIndex(wtomove bool) int {
	if wtomove {
		return 0
	}
	return 1
}

// moveGivesCheck applies the move to find out whether it checks the opponent.
// Costs a make/unmake per move scored; precision over speed.
func moveGivesCheck(b *dragontoothmg.Board, mv dragontoothmg.Move) bool {
	unapply := b.Apply(mv)
	check := b.OurKingInCheck()
	unapply()
	return check
}

// isDevelopmentMove reports whether the move brings a minor piece off its
// home square.
func isDevelopmentMove(mv dragontoothmg.Move, own *dragontoothmg.Bitboards, wtomove bool) bool {
	fromBB := uint64(1) << mv.From()
	if fromBB&(own.Knights|own.Bishops) == 0 {
		return false
	}
	if wtomove {
		return fromBB&whiteMinorHomeMask != 0
	}
	return fromBB&blackMinorHomeMask != 0
}

// heuristicMoveScore is the static (table-free) part of the move-ordering
// score, shared between the tactical searcher's ordering and the exploratory
// searcher's priors. Each heuristic is scaled by its branching weight.
func heuristicMoveScore(b *dragontoothmg.Board, mv dragontoothmg.Move, w BranchingWeights, own, opp *dragontoothmg.Bitboards) int32 {
	var score int32

	if promote := mv.Promote(); promote != 0 {
		score += promotionOffset + int32(pieceValueEG[promote])
	}
	if dragontoothmg.IsCapture(mv, b) {
		victim, occupied := GetPieceTypeAtPosition(mv.To(), opp)
		if !occupied {
			victim = dragontoothmg.Pawn // en passant
		}
		attacker, _ := GetPieceTypeAtPosition(mv.From(), own)
		score += int32(float64(captureOffset+mvvLva[victim][attacker]) * w.CaptureBonus)
	}
	if moveGivesCheck(b, mv) {
		score += int32(float64(checkOffset) * w.CheckBonus)
	}
	if uint64(1)<<mv.To()&centerMask != 0 {
		score += int32(float64(centerSquareBonus) * w.CenterBonus)
	}
	if isDevelopmentMove(mv, own, b.Wtomove) {
		score += int32(float64(developmentBonus) * w.DevelopmentBonus)
	}
	return score
}

// orderNextMove selection-sorts a single entry to the front of the unsearched
// tail, so aborted searches never pay for a full sort.
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMoves builds the full ordering for one node: TT move first, then the
// weighted static heuristics layered with killers, counter moves and quiet
// history.
func (s *AlphaBetaSearcher) scoreMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move, ply int, ttMove, prevMove dragontoothmg.Move) moveList {
	own, opp := sideBitboards(b)
	side := sideIndex(b.Wtomove)

	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, mv := range moves {
		var score int32
		if ttMove != 0 && mv == ttMove {
			score = pvOffset + 1500
		} else {
			score = heuristicMoveScore(b, mv, s.weights, own, opp)
			if mv == s.killers.moves[ply][0] {
				score += killerOffset + 200
			} else if mv == s.killers.moves[ply][1] {
				score += killerOffset
			}
			if s.counters[side][prevMove.From()][prevMove.To()] == mv {
				score += counterOffset
			}
			score += s.history.scores[side][mv.From()][mv.To()]
		}
		list.moves[i] = scoredMove{move: mv, score: score}
	}
	return list
}

// scoreCaptures keeps only captures and promotions, MVV-LVA ordered, for
// quiescence.
func (s *AlphaBetaSearcher) scoreCaptures(b *dragontoothmg.Board, moves []dragontoothmg.Move) moveList {
	own, opp := sideBitboards(b)

	var list moveList
	for _, mv := range moves {
		isPromotion := mv.Promote() != 0
		isCapture := dragontoothmg.IsCapture(mv, b)
		if !isCapture && !isPromotion {
			continue
		}

		var score int32
		if isPromotion {
			score = captureOffset + 75
		} else {
			victim, occupied := GetPieceTypeAtPosition(mv.To(), opp)
			if !occupied {
				victim = dragontoothmg.Pawn // en passant
			}
			attacker, _ := GetPieceTypeAtPosition(mv.From(), own)
			score = mvvLva[victim][attacker]
		}
		list.moves = append(list.moves, scoredMove{move: mv, score: score})
	}
	return list
}

// priorTemperature flattens the ordering scores into usable probabilities;
// scores span roughly [0, 25000].
const priorTemperature = 4000.0

// moveOrderingPriors turns the heuristic ordering scores into a softmax
// distribution for the exploratory searcher's root and expansion priors.
func moveOrderingPriors(b *dragontoothmg.Board, moves []dragontoothmg.Move, w BranchingWeights) []float64 {
	own, opp := sideBitboards(b)

	scores := make([]float64, len(moves))
	maxScore := math.Inf(-1)
	for i, mv := range moves {
		scores[i] = float64(heuristicMoveScore(b, mv, w, own, opp))
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}

	var sum float64
	for i := range scores {
		scores[i] = math.Exp((scores[i] - maxScore) / priorTemperature)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
	return scores
}
