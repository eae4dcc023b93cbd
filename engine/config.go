package engine

import "github.com/rs/zerolog"

// Config is the orchestrator's immutable configuration. Build one with
// DefaultConfig, adjust fields, and hand it to NewOrchestrator; the
// orchestrator keeps its own copy and never writes to it afterwards.
type Config struct {
	// OpeningWidth multiplies the exploratory searcher's simulation budget
	// in the opening.
	OpeningWidth float64
	// MiddlegameFocus multiplies the requested depth for middlegame
	// tactical searches.
	MiddlegameFocus float64
	// EndgamePrecision multiplies the requested depth for endgame tactical
	// searches; deeper than the middlegame multiplier.
	EndgamePrecision float64
	// TablebasePieceThreshold is the maximum total piece count for which a
	// tablebase probe is attempted.
	TablebasePieceThreshold int
	// EntropyLearningRate scales the adaptive branching weight updates.
	EntropyLearningRate float64
	// AdaptiveBranching enables injecting the tuned weights into the
	// tactical searcher's move ordering.
	AdaptiveBranching bool
	// BaseSimulations is the exploratory searcher's budget before the
	// opening multiplier is applied.
	BaseSimulations int

	Logger zerolog.Logger
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		OpeningWidth:            2.0,
		MiddlegameFocus:         1.5,
		EndgamePrecision:        2.0,
		TablebasePieceThreshold: 7,
		EntropyLearningRate:     0.1,
		AdaptiveBranching:       true,
		BaseSimulations:         800,
		Logger:                  zerolog.Nop(),
	}
}
