package engine

// entropyWindowSize bounds the controller's entropy history.
const entropyWindowSize = 100

// BranchingWeights are named positive multipliers applied to the tactical
// searcher's move-ordering heuristics. They start at 1.0 and drift as the
// controller adapts; no bound is enforced on the drift.
type BranchingWeights struct {
	CaptureBonus     float64
	CheckBonus       float64
	CenterBonus      float64
	DevelopmentBonus float64
}

// DefaultBranchingWeights returns the neutral weight vector.
func DefaultBranchingWeights() BranchingWeights {
	return BranchingWeights{
		CaptureBonus:     1.0,
		CheckBonus:       1.0,
		CenterBonus:      1.0,
		DevelopmentBonus: 1.0,
	}
}

// AdaptiveController tunes the branching weights from the gradient of
// observed search entropy. Rising entropy means positions are getting less
// predictable, so ordering shifts away from forcing captures toward central
// control; falling entropy shifts it back. Only the capture and center
// weights react; the check and development weights are intentionally left
// out of the update rule.
//
// The controller is exclusively owned by one orchestrator and is not safe
// for concurrent use.
type AdaptiveController struct {
	weights      BranchingWeights
	history      []float64
	learningRate float64
}

func NewAdaptiveController(learningRate float64) *AdaptiveController {
	return &AdaptiveController{
		weights:      DefaultBranchingWeights(),
		history:      make([]float64, 0, entropyWindowSize),
		learningRate: learningRate,
	}
}

// RecordAndUpdate appends one entropy observation, applies at most one
// weight update, and returns the current weights. With fewer than two
// observations there is no gradient and the weights are untouched.
func (c *AdaptiveController) RecordAndUpdate(entropy float64) BranchingWeights {
	c.history = append(c.history, entropy)
	if len(c.history) > entropyWindowSize {
		c.history = append(c.history[:0], c.history[len(c.history)-entropyWindowSize:]...)
	}

	if len(c.history) < 2 {
		return c.weights
	}

	gradient := c.history[len(c.history)-1] - c.history[len(c.history)-2]
	step := c.learningRate * 0.1
	if gradient > 0 {
		c.weights.CaptureBonus *= 1 - step
		c.weights.CenterBonus *= 1 + step
	} else {
		c.weights.CaptureBonus *= 1 + step
		c.weights.CenterBonus *= 1 - step
	}
	return c.weights
}

// Weights returns a copy of the current weight vector.
func (c *AdaptiveController) Weights() BranchingWeights {
	return c.weights
}

// HistoryLen reports how many entropy observations are retained.
func (c *AdaptiveController) HistoryLen() int {
	return len(c.history)
}
