package engine

import (
	"testing"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

func defaultTacticalParams(depth int) TacticalParams {
	return TacticalParams{
		MaxDepth:           depth,
		Quiescence:         true,
		LateMoveReductions: true,
		NullMovePruning:    true,
		Evaluator:          ClassicalEvaluator{},
	}
}

func moveInList(mv dragontoothmg.Move, moves []dragontoothmg.Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}

func TestTacticalFindsMateInOne(t *testing.T) {
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	s := NewAlphaBetaSearcher()

	res, err := s.Search(&board, 0, defaultTacticalParams(5))
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !res.HasMove {
		t.Fatal("expected a move on a non-terminal position")
	}
	if got := res.Move.String(); got != "a1a8" {
		t.Errorf("mate in one: expected a1a8, got %s", got)
	}
	if res.Value < 100 {
		t.Errorf("mate in one: expected a mate-range value, got %.2f", res.Value)
	}
}

func TestTacticalReturnsLegalMove(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legal := board.GenerateLegalMoves()
	s := NewAlphaBetaSearcher()

	res, err := s.Search(&board, 0, defaultTacticalParams(4))
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
	if res.Depth < 1 {
		t.Errorf("expected at least one completed iteration, got depth %d", res.Depth)
	}
}

func TestTacticalTerminalPositions(t *testing.T) {
	s := NewAlphaBetaSearcher()

	// Fool's mate: white is checkmated.
	mated := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	res, err := s.Search(&mated, 0, defaultTacticalParams(3))
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

func TestTacticalNilEvaluator(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	s := NewAlphaBetaSearcher()

	params := defaultTacticalParams(3)
	params.Evaluator = nil
	if _, err := s.Search(&board, 0, params); err == nil {
		t.Error("expected an error for a nil evaluator")
	}
}

func TestTacticalHonorsTimeLimit(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	s := NewAlphaBetaSearcher()

	start := time.Now()
	res, err := s.Search(&board, 1, defaultTacticalParams(maxSearchDepth))
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !res.HasMove {
		t.Error("expected a fallback move even under a tiny time limit")
	}
	if elapsed > 2*time.Second {
		t.Errorf("1ms soft limit took %v", elapsed)
	}
}

func TestTacticalWeightsInjection(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	legal := board.GenerateLegalMoves()
	s := NewAlphaBetaSearcher()

	weights := BranchingWeights{CaptureBonus: 0.3, CheckBonus: 1.4, CenterBonus: 2.5, DevelopmentBonus: 0.9}
	params := defaultTacticalParams(3)
	params.Weights = &weights

	res, err := s.Search(&board, 0, params)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !moveInList(res.Move, legal) {
		t.Errorf("skewed ordering weights produced illegal move %s", res.Move.String())
	}
	if weights != (BranchingWeights{CaptureBonus: 0.3, CheckBonus: 1.4, CenterBonus: 2.5, DevelopmentBonus: 0.9}) {
		t.Errorf("caller's weights were mutated: %+v", weights)
	}
}

func TestTacticalPrecisionToggles(t *testing.T) {
	// Endgame configuration: quiescence only, no reductions or null move.
	board := dragontoothmg.ParseFen("8/4k3/4p3/8/8/4P3/4K3/8 w - - 0 40")
	legal := board.GenerateLegalMoves()
	s := NewAlphaBetaSearcher()

	params := TacticalParams{
		MaxDepth:   6,
		Quiescence: true,
		Evaluator:  EndgameEvaluator{},
	}
	res, err := s.Search(&board, 0, params)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !moveInList(res.Move, legal) {
		t.Errorf("returned move %s is not legal", res.Move.String())
	}
}

func TestTacticalResetClearsState(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	s := NewAlphaBetaSearcher()
	if _, err := s.Search(&board, 0, defaultTacticalParams(4)); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	s.Reset()

	res, err := s.Search(&board, 0, defaultTacticalParams(4))
	if err != nil {
		t.Fatalf("search after reset failed: %v", err)
	}
	if !res.HasMove {
		t.Error("expected a move after reset")
	}
}
