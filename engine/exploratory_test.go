package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestExploratoryReturnsLegalMove(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legal := board.GenerateLegalMoves()
	m := NewMCTSSearcher(ClassicalEvaluator{}, 1)

	res, err := m.Search(&board, 0, ExploratoryParams{Simulations: 400, Exploration: 1.5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !res.HasMove {
		t.Fatal("expected a move from the start position")
	}
	if !moveInList(res.Move, legal) {
		t.Errorf("returned move %s is not legal", res.Move.String())
	}
	if res.Nodes == 0 {
		t.Error("expected a non-zero node count")
	}
}

func TestExploratoryFindsMateInOne(t *testing.T) {
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	m := NewMCTSSearcher(ClassicalEvaluator{}, 1)

	res, err := m.Search(&board, 0, ExploratoryParams{Simulations: 800, Exploration: 1.5})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if got := res.Move.String(); got != "a1a8" {
		t.Errorf("mate in one: expected a1a8, got %s", got)
	}
	if res.Value < 100 {
		t.Errorf("mate in one: expected a mate-range value, got %.2f", res.Value)
	}
}

func TestExploratoryTerminalPosition(t *testing.T) {
	board := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	m := NewMCTSSearcher(ClassicalEvaluator{}, 1)

	res, err := m.Search(&board, 0, ExploratoryParams{Simulations: 100})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if res.HasMove {
		t.Errorf("checkmated position: expected no move, got %s", res.Move.String())
	}
	if res.Value >= 0 {
		t.Errorf("checkmated position: expected a losing value, got %.2f", res.Value)
	}
}

func TestExploratoryBranchingFactorBounds(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legal := board.GenerateLegalMoves()
	m := NewMCTSSearcher(ClassicalEvaluator{}, 7)

	res, err := m.Search(&board, 0, ExploratoryParams{Simulations: 300, Exploration: 2.0, AddNoise: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if res.BranchingFactor < 1 || res.BranchingFactor > float64(len(legal)) {
		t.Errorf("effective branching factor %.2f outside [1, %d]", res.BranchingFactor, len(legal))
	}
}

func TestExploratorySeedDeterminism(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	params := ExploratoryParams{Simulations: 200, Exploration: 2.0, AddNoise: true}

	first, err := NewMCTSSearcher(ClassicalEvaluator{}, 42).Search(&board, 0, params)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	second, err := NewMCTSSearcher(ClassicalEvaluator{}, 42).Search(&board, 0, params)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if first.Move != second.Move {
		t.Errorf("same seed picked different moves: %s vs %s", first.Move.String(), second.Move.String())
	}
}

func TestExploratoryNilEvaluator(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	m := NewMCTSSearcher(nil, 1)
	if _, err := m.Search(&board, 0, ExploratoryParams{Simulations: 10}); err == nil {
		t.Error("expected an error for a nil evaluator")
	}
}

func TestExploratoryLeavesBoardUntouched(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	before := board.ToFen()
	m := NewMCTSSearcher(ClassicalEvaluator{}, 3)
	if _, err := m.Search(&board, 0, ExploratoryParams{Simulations: 300, AddNoise: true}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if after := board.ToFen(); after != before {
		t.Errorf("board mutated by search:\nbefore %s\nafter  %s", before, after)
	}
}
