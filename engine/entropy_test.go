package engine

import (
	"math"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// constEval makes every move look equally good, so the entropy of any
// position with n sampled moves is exactly ln(n).
type constEval struct{ score int }

func (e constEval) Evaluate(b *dragontoothmg.Board) int { return e.score }

func TestMoveEntropyUniformIsLogN(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	moves := board.GenerateLegalMoves()
	if len(moves) != 20 {
		t.Fatalf("startpos: expected 20 legal moves, got %d", len(moves))
	}

	entropy := MoveEntropy(&board, constEval{score: 50}, moves)
	want := math.Log(20)
	if math.Abs(entropy-want) > 1e-6 {
		t.Errorf("uniform distribution over 20 moves: expected entropy %.6f, got %.6f", want, entropy)
	}
}

func TestMoveEntropySampleCap(t *testing.T) {
	// A lone queen gives well over 20 legal moves; the estimate must only
	// consume the first entropySampleLimit of them.
	board := dragontoothmg.ParseFen("k7/8/8/8/3Q4/8/8/K7 w - - 0 1")
	moves := board.GenerateLegalMoves()
	if len(moves) <= entropySampleLimit {
		t.Fatalf("expected more than %d legal moves, got %d", entropySampleLimit, len(moves))
	}

	entropy := MoveEntropy(&board, constEval{score: 10}, moves)
	want := math.Log(float64(entropySampleLimit))
	if math.Abs(entropy-want) > 1e-6 {
		t.Errorf("capped sample: expected entropy %.6f, got %.6f", want, entropy)
	}
}

func TestMoveEntropyFewMoves(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	moves := board.GenerateLegalMoves()

	if got := MoveEntropy(&board, constEval{}, moves[:1]); got != 0 {
		t.Errorf("single candidate move: expected entropy 0, got %f", got)
	}
	if got := MoveEntropy(&board, constEval{}, nil); got != 0 {
		t.Errorf("no candidate moves: expected entropy 0, got %f", got)
	}
}

func TestMoveEntropySharpPositionScoresLower(t *testing.T) {
	// White can win the queen outright; a material-aware evaluator should
	// concentrate the distribution on that move, while a flat evaluator
	// keeps it uniform.
	board := dragontoothmg.ParseFen("k7/8/8/3q4/8/8/3R4/K7 w - - 0 1")
	moves := board.GenerateLegalMoves()
	if len(moves) < 5 {
		t.Fatalf("expected a rich move list, got %d moves", len(moves))
	}

	sharp := MoveEntropy(&board, ClassicalEvaluator{}, moves)
	flat := MoveEntropy(&board, constEval{score: 0}, moves)

	if sharp < 0 {
		t.Errorf("entropy must be non-negative, got %f", sharp)
	}
	if sharp >= flat {
		t.Errorf("hanging-queen position: expected entropy below uniform %.4f, got %.4f", flat, sharp)
	}
}

func TestMoveEntropyLeavesBoardUntouched(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	before := board.ToFen()
	MoveEntropy(&board, ClassicalEvaluator{}, board.GenerateLegalMoves())
	if after := board.ToFen(); after != before {
		t.Errorf("board mutated by entropy estimate:\nbefore %s\nafter  %s", before, after)
	}
}
