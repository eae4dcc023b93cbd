package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestClassicalEvaluatorStartposNearBalanced(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	score := ClassicalEvaluator{}.Evaluate(&board)
	// Symmetric material and tables leave only the tempo bonus.
	if Abs(score) > 2*tempoBonus {
		t.Errorf("start position: expected near-zero score, got %d", score)
	}
}

func TestClassicalEvaluatorSideToMovePerspective(t *testing.T) {
	whiteToMove := dragontoothmg.ParseFen("k7/8/8/8/3Q4/8/8/K7 w - - 0 1")
	blackToMove := dragontoothmg.ParseFen("k7/8/8/8/3Q4/8/8/K7 b - - 0 1")

	up := ClassicalEvaluator{}.Evaluate(&whiteToMove)
	down := ClassicalEvaluator{}.Evaluate(&blackToMove)

	if up < 300 {
		t.Errorf("queen up, white to move: expected a large positive score, got %d", up)
	}
	if down > -300 {
		t.Errorf("queen up, black to move: expected a large negative score, got %d", down)
	}
}

func TestClassicalEvaluatorMaterialOrdering(t *testing.T) {
	queenUp := dragontoothmg.ParseFen("k7/8/8/8/3Q4/8/8/K7 w - - 0 1")
	rookUp := dragontoothmg.ParseFen("k7/8/8/8/3R4/8/8/K7 w - - 0 1")

	q := ClassicalEvaluator{}.Evaluate(&queenUp)
	r := ClassicalEvaluator{}.Evaluate(&rookUp)
	if q <= r {
		t.Errorf("queen advantage (%d) should outscore rook advantage (%d)", q, r)
	}
}

func TestEndgameEvaluatorRewardsPasserAdvance(t *testing.T) {
	home := dragontoothmg.ParseFen("7k/8/8/8/8/4P3/8/K7 w - - 0 1")
	advanced := dragontoothmg.ParseFen("7k/4P3/8/8/8/8/8/K7 w - - 0 1")

	e := EndgameEvaluator{}
	if e.Evaluate(&advanced) <= e.Evaluate(&home) {
		t.Errorf("passer on the 7th (%d) should outscore one on the 3rd (%d)",
			e.Evaluate(&advanced), e.Evaluate(&home))
	}
}

func TestEndgameEvaluatorKingCentralization(t *testing.T) {
	corner := dragontoothmg.ParseFen("7k/8/8/8/8/8/8/K7 w - - 0 1")
	center := dragontoothmg.ParseFen("7k/8/8/8/3K4/8/8/8 w - - 0 1")

	e := EndgameEvaluator{}
	if e.Evaluate(&center) <= e.Evaluate(&corner) {
		t.Errorf("centralized king (%d) should outscore cornered king (%d)",
			e.Evaluate(&center), e.Evaluate(&corner))
	}
}

func TestGetPiecePhase(t *testing.T) {
	full := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	if got := GetPiecePhase(&full); got != maxPiecePhase {
		t.Errorf("start position: expected phase %d, got %d", maxPiecePhase, got)
	}

	bare := dragontoothmg.ParseFen("7k/8/8/8/8/8/8/K7 w - - 0 1")
	if got := GetPiecePhase(&bare); got != 0 {
		t.Errorf("bare kings: expected phase 0, got %d", got)
	}
}
