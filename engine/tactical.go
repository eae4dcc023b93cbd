package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0
)

const (
	aspirationWindow int32 = 35
	deltaMargin      int32 = 200
	rfpMaxDepth            = 7
	rfpMarginPerPly  int32 = 100
	nullMoveMinDepth int8  = 3
	lmrMinDepth      int8  = 3
	lmrMoveLimit           = 2
	// Requested depths are clamped here; check extensions can still push a
	// line deeper, bounded by maxPly.
	maxSearchDepth = 64
)

// The board's incremental hash cannot see a hand-made null move, so the
// searcher XORs this key into its TT lookups while a null move is on the
// stack.
const nullMoveHashKey uint64 = 0x9E3779B97F4A7C15

var lmrTable [maxPly + 1][100]int8

func init() {
	for d := 1; d <= maxPly; d++ {
		for m := 1; m < 100; m++ {
			r := 1 + d/8 + m/16 // gentle growth with depth & lateness
			if r > d-2 {
				r = d - 2
			}
			if r < 0 {
				r = 0
			}
			lmrTable[d][m] = int8(r)
		}
	}
}

var errNilEvaluator = errors.New("tactical search: nil evaluator")

// AlphaBetaSearcher is the depth-first tactical collaborator: iterative
// deepening with aspiration windows over a PVS alpha-beta, with quiescence,
// late-move reductions and null-move pruning individually toggleable per
// call. All tables are instance state, so independent searchers can coexist;
// a single instance must not be searched concurrently.
type AlphaBetaSearcher struct {
	tt       *transTable
	killers  killerTable
	history  historyTable
	counters [2][64][64]dragontoothmg.Move

	eval        Evaluator
	weights     BranchingWeights
	useQuiesce  bool
	useLMR      bool
	useNullMove bool

	tc        timeControl
	nodes     uint64
	stopped   bool
	keyAdjust uint64
	rootMove  dragontoothmg.Move
}

func NewAlphaBetaSearcher() *AlphaBetaSearcher {
	return &AlphaBetaSearcher{tt: newTransTable(defaultTTSizeMB)}
}

// Reset clears all cross-search state, for a new game.
func (s *AlphaBetaSearcher) Reset() {
	s.tt.clear()
	s.killers.clear()
	s.history.clear()
	for side := 0; side < 2; side++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				s.counters[side][from][to] = 0
			}
		}
	}
}

func (s *AlphaBetaSearcher) Search(b *dragontoothmg.Board, timeLimitMs int, params TacticalParams) (SearchResult, error) {
	if params.Evaluator == nil {
		return SearchResult{}, errNilEvaluator
	}

	rootMoves := b.GenerateLegalMoves()
	if len(rootMoves) == 0 {
		return SearchResult{Value: terminalScore(b)}, nil
	}

	s.eval = params.Evaluator
	if params.Weights != nil {
		s.weights = *params.Weights
	} else {
		s.weights = DefaultBranchingWeights()
	}
	s.useQuiesce = params.Quiescence
	s.useLMR = params.LateMoveReductions
	s.useNullMove = params.NullMovePruning

	s.tc = newTimeControl(timeLimitMs)
	s.nodes = 0
	s.stopped = false
	s.keyAdjust = 0
	s.rootMove = 0
	s.killers.clear()

	maxDepth := Clamp(params.MaxDepth, 1, maxSearchDepth)

	var best SearchResult
	alpha, beta := -MaxScore, MaxScore
	window := aspirationWindow

	for depth := 1; depth <= maxDepth; {
		score := s.alphabeta(b, alpha, beta, int8(depth), 0, 0, false)
		if s.stopped {
			break
		}

		// Aspiration window re-search
		if score <= alpha || score >= beta {
			window *= 2
			alpha = Max(score-window, -MaxScore)
			beta = Min(score+window, MaxScore)
			continue
		}

		window = aspirationWindow
		alpha = Max(score-window, -MaxScore)
		beta = Min(score+window, MaxScore)

		best.Move = s.rootMove
		best.HasMove = s.rootMove != 0
		best.Value = float64(score) / 100
		best.Depth = depth

		if score > Checkmate || score < -Checkmate {
			break // mate line found, deeper iterations cannot improve it
		}
		depth++
	}

	best.Nodes = s.nodes
	if !best.HasMove {
		// Ran out of time before the first iteration finished; any legal
		// move beats returning empty-handed.
		best.Move = rootMoves[0]
		best.HasMove = true
	}
	return best, nil
}

func (s *AlphaBetaSearcher) alphabeta(b *dragontoothmg.Board, alpha, beta int32, depth int8, ply int, prevMove dragontoothmg.Move, didNull bool) int32 {
	s.nodes++
	if s.nodes&4095 == 0 && s.tc.Expired() {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}
	if ply >= maxPly {
		return int32(s.eval.Evaluate(b))
	}

	isRoot := ply == 0
	isPVNode := beta-alpha > 1

	if !isRoot && int(b.Halfmoveclock) >= 100 {
		return DrawScore
	}

	inCheck := b.OurKingInCheck()
	if inCheck {
		depth++ // check extension
	}

	if depth <= 0 {
		if s.useQuiesce {
			return s.quiesce(b, alpha, beta, ply)
		}
		return int32(s.eval.Evaluate(b))
	}

	hash := b.Hash() ^ s.keyAdjust
	entry, ttHit := s.tt.probe(hash)
	var ttMove dragontoothmg.Move
	if ttHit {
		ttMove = entry.move
	}
	if ok, ttScore := s.tt.usable(entry, hash, depth, alpha, beta, ply); ok && !isRoot && !isPVNode {
		return ttScore
	}

	var staticScore int32
	if ttHit {
		staticScore = entry.score
	} else {
		staticScore = int32(s.eval.Evaluate(b))
	}

	// Reverse futility: if the static score beats beta by a depth-scaled
	// margin, the node is not worth expanding.
	if !inCheck && !isPVNode && !isRoot && depth <= rfpMaxDepth && Abs(beta) < Checkmate {
		margin := rfpMarginPerPly * int32(depth)
		if staticScore-margin >= beta {
			return staticScore - margin
		}
	}

	if s.useNullMove && !inCheck && !isPVNode && !isRoot && !didNull && depth >= nullMoveMinDepth && sideHasPieces(b) {
		undoNull := s.applyNullMove(b)
		reduction := int8(3) + depth/6
		if reduction > depth-1 {
			reduction = depth - 1
		}
		score := -s.alphabeta(b, -beta, -beta+1, depth-1-reduction, ply+1, 0, true)
		undoNull()
		if s.stopped {
			return 0
		}
		if score >= beta && score < Checkmate {
			return score
		}
	}

	allMoves := b.GenerateLegalMoves()
	if len(allMoves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply) // checkmate
		}
		return DrawScore // stalemate
	}

	list := s.scoreMoves(b, allMoves, ply, ttMove, prevMove)

	bestScore := -MaxScore
	var bestMove dragontoothmg.Move
	ttFlag := ttAlphaFlag
	searched := 0
	quietsTried := make([]dragontoothmg.Move, 0, 16)
	side := sideIndex(b.Wtomove)

	for i := 0; i < len(list.moves); i++ {
		orderNextMove(i, &list)
		mv := list.moves[i].move

		isCapture := dragontoothmg.IsCapture(mv, b)
		tactical := isCapture || mv.Promote() != 0
		searched++
		if !isCapture {
			quietsTried = append(quietsTried, mv)
		}

		unapply := b.Apply(mv)
		givesCheck := b.OurKingInCheck()

		var score int32
		if searched == 1 {
			score = -s.alphabeta(b, -beta, -alpha, depth-1, ply+1, mv, didNull)
		} else {
			var reduction int8
			if s.useLMR && depth >= lmrMinDepth && searched > lmrMoveLimit &&
				!tactical && !inCheck && !givesCheck && !s.killers.isKiller(mv, ply) {
				reduction = lmrReduction(depth, searched, s.history.scores[side][mv.From()][mv.To()])
			}

			// PVS: null-window probe (reduced when allowed), then re-search
			// at full depth, then full window when the probe lands inside it.
			score = -s.alphabeta(b, -(alpha + 1), -alpha, depth-1-reduction, ply+1, mv, didNull)
			if score > alpha && reduction > 0 {
				score = -s.alphabeta(b, -(alpha + 1), -alpha, depth-1, ply+1, mv, didNull)
			}
			if score > alpha && score < beta {
				score = -s.alphabeta(b, -beta, -alpha, depth-1, ply+1, mv, didNull)
			}
		}
		unapply()

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}

		if score >= beta {
			ttFlag = ttBetaFlag
			if !isCapture {
				s.killers.insert(mv, ply)
				s.counters[side][prevMove.From()][prevMove.To()] = mv
				s.history.increment(side, mv, int(depth))
				for _, failed := range quietsTried {
					if failed != mv {
						s.history.decrement(side, failed)
					}
				}
			}
			break
		}

		if score > alpha {
			alpha = score
			ttFlag = ttExactFlag
			if isRoot {
				s.rootMove = mv
			}
			if !isCapture {
				s.history.increment(side, mv, int(depth))
			}
		}
	}

	if !s.stopped {
		s.tt.store(hash, depth, ply, bestMove, bestScore, ttFlag)
	}
	return bestScore
}

func (s *AlphaBetaSearcher) quiesce(b *dragontoothmg.Board, alpha, beta int32, ply int) int32 {
	s.nodes++
	if s.nodes&2047 == 0 && s.tc.Expired() {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}
	if ply >= maxPly {
		return int32(s.eval.Evaluate(b))
	}

	inCheck := b.OurKingInCheck()
	standPat := int32(s.eval.Evaluate(b))

	// Stand-pat pruning (not when in check)
	if !inCheck {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	bestScore := standPat
	if inCheck {
		bestScore = -MaxScore // must escape the check
	}

	allMoves := b.GenerateLegalMoves()
	if len(allMoves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}

	var list moveList
	if inCheck {
		list = s.scoreMoves(b, allMoves, Min(ply, maxPly), 0, 0)
	} else {
		list = s.scoreCaptures(b, allMoves)
	}

	for i := 0; i < len(list.moves); i++ {
		orderNextMove(i, &list)
		mv := list.moves[i].move

		// Delta pruning: if even winning the victim plus a margin cannot
		// lift us to alpha, skip the capture.
		if !inCheck {
			_, opp := sideBitboards(b)
			victim, occupied := GetPieceTypeAtPosition(mv.To(), opp)
			if !occupied {
				victim = dragontoothmg.Pawn
			}
			gain := int32(pieceValueMG[victim])
			if promote := mv.Promote(); promote != 0 {
				gain += int32(pieceValueMG[promote] - pieceValueMG[dragontoothmg.Pawn])
			}
			if standPat+gain+deltaMargin < alpha {
				continue
			}
		}

		unapply := b.Apply(mv)
		score := -s.quiesce(b, -beta, -alpha, ply+1)
		unapply()

		if s.stopped {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return bestScore
}

// applyNullMove hands the move to the opponent. dragontoothmg has no native
// null move, so the side bit is flipped directly and the TT key compensated;
// en-passant rights leak through the flip, tolerable for a beta-cutoff-only
// heuristic.
func (s *AlphaBetaSearcher) applyNullMove(b *dragontoothmg.Board) func() {
	b.Wtomove = !b.Wtomove
	s.keyAdjust ^= nullMoveHashKey
	return func() {
		b.Wtomove = !b.Wtomove
		s.keyAdjust ^= nullMoveHashKey
	}
}

func lmrReduction(depth int8, searched int, historyScore int32) int8 {
	d := Min(int(depth), maxPly)
	m := Min(searched, 99)
	r := lmrTable[d][m]
	// Well-scoring quiet moves earn back some depth.
	if r > 0 && historyScore > historyMaxVal/2 {
		r--
	}
	return r
}

func sideHasPieces(b *dragontoothmg.Board) bool {
	if b.Wtomove {
		return b.White.Knights|b.White.Bishops|b.White.Rooks|b.White.Queens != 0
	}
	return b.Black.Knights|b.Black.Bishops|b.Black.Rooks|b.Black.Queens != 0
}

// terminalScore scores a position with no legal moves, in pawn units from
// the side to move: mated is the worst score, stalemate is a draw.
func terminalScore(b *dragontoothmg.Board) float64 {
	if b.OurKingInCheck() {
		return float64(-MaxScore) / 100
	}
	return 0
}
