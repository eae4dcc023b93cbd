package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

const (
	// entropySampleLimit caps how many moves get evaluated per estimate.
	// Sampling the head of the generated move list is a cost tradeoff, not
	// a selection heuristic.
	entropySampleLimit = 20
	entropyEpsilon     = 1e-10
	// entropyValueFloor is what the worst sampled evaluation is shifted to,
	// keeping every pseudo-probability strictly positive.
	entropyValueFloor = 0.01
)

// MoveEntropy estimates the outcome uncertainty of a position as the Shannon
// entropy of its candidate-move evaluations. The first entropySampleLimit
// legal moves are each applied and evaluated from the mover's perspective;
// the scores are shifted positive, normalized into a distribution, and its
// entropy returned. Sharp positions (one move clearly best) score low,
// unclear positions score high.
//
// Returns 0 when fewer than 2 legal moves exist. Never returns a negative
// value and never fails for a well-formed position.
func MoveEntropy(b *dragontoothmg.Board, eval Evaluator, legalMoves []dragontoothmg.Move) float64 {
	if len(legalMoves) < 2 {
		return 0
	}

	sample := legalMoves
	if len(sample) > entropySampleLimit {
		sample = sample[:entropySampleLimit]
	}

	values := make([]float64, len(sample))
	for i, mv := range sample {
		unapply := b.Apply(mv)
		// The evaluator scores for the new side to move; negate back to the
		// perspective of the player choosing among these moves.
		values[i] = -float64(eval.Evaluate(b))
		unapply()
	}

	minValue := values[0]
	for _, v := range values[1:] {
		if v < minValue {
			minValue = v
		}
	}

	shift := entropyValueFloor - minValue
	var sum float64
	for i := range values {
		values[i] += shift
		sum += values[i]
	}

	var entropy float64
	for _, v := range values {
		p := v / sum
		entropy -= p * math.Log(p+entropyEpsilon)
	}
	// The epsilon guard can push the result a hair below zero for
	// single-spike distributions.
	return math.Max(entropy, 0)
}
