package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// Exploration constants per dispatch path: wide in the opening, tighter
	// for middlegame verification searches.
	openingExploration = 2.5
	verifyExploration  = 1.5

	// Middlegame verification blend: trigger conditions and mix.
	blendEntropyThreshold      = 2.0
	blendMinTimeLimitMs        = 100
	blendTimeFraction          = 0.2
	blendDisagreementThreshold = 0.3
	blendPrimaryWeight         = 0.7
)

// ErrAllSearchersFailed reports that both the phase's primary searcher and
// its fallback failed to produce a move on a non-terminal position.
var ErrAllSearchersFailed = errors.New("all searchers failed")

// Orchestrator is the phase-aware meta-search controller. Each Search call
// classifies the position, dispatches to the phase's strategy, blends in a
// verification value when the position is uncertain, and feeds the observed
// entropy back into the adaptive branching controller.
//
// An Orchestrator exclusively owns its branching weights and entropy
// history and has no internal locking: use one instance per concurrent
// game, or serialize Search calls externally.
type Orchestrator struct {
	cfg         Config
	controller  *AdaptiveController
	tactical    TacticalSearcher
	exploratory ExploratorySearcher
	tablebase   TablebaseProber
	eval        Evaluator
	endgameEval Evaluator
	log         zerolog.Logger

	lastStats SearchStats
}

// NewOrchestrator wires the default collaborators: an alpha-beta tactical
// searcher, a PUCT exploratory searcher sharing the classical evaluator, and
// the always-miss tablebase stub.
func NewOrchestrator(cfg Config) *Orchestrator {
	eval := ClassicalEvaluator{}
	return &Orchestrator{
		cfg:         cfg,
		controller:  NewAdaptiveController(cfg.EntropyLearningRate),
		tactical:    NewAlphaBetaSearcher(),
		exploratory: NewMCTSSearcher(eval, time.Now().UnixNano()),
		tablebase:   StubTablebase{},
		eval:        eval,
		endgameEval: EndgameEvaluator{},
		log:         cfg.Logger,
	}
}

// ResetForNewGame clears cross-game searcher state and restarts the
// adaptive controller from neutral weights.
func (o *Orchestrator) ResetForNewGame() {
	if r, ok := o.tactical.(interface{ Reset() }); ok {
		r.Reset()
	}
	o.controller = NewAdaptiveController(o.cfg.EntropyLearningRate)
	o.lastStats = SearchStats{}
}

// Search picks a move for the position. depth is the nominal search depth
// before the phase multipliers; timeLimitMs <= 0 means no time limit. The
// limit is soft either way: collaborators poll it themselves.
//
// The result either carries a legal move, or HasMove == false on a genuinely
// terminal position with Value holding the mate/stalemate score. Stats are
// fully populated on every path, early exits included.
func (o *Orchestrator) Search(b *dragontoothmg.Board, depth int, timeLimitMs int) (SearchResult, SearchStats, error) {
	start := time.Now()
	stats := SearchStats{}

	phase := ClassifyPhase(b, o.cfg.TablebasePieceThreshold)
	stats.Phase = phase

	legalMoves := b.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		res := SearchResult{Value: terminalScore(b)}
		o.finish(&stats, start, res)
		return res, stats, nil
	}

	if phase == PhaseTablebase {
		res, hit := o.tablebase.Probe(b)
		stats.TablebaseProbes++
		if hit {
			o.log.Debug().Str("move", res.Move.String()).Msg("tablebase hit")
			o.finish(&stats, start, res)
			return res, stats, nil
		}
		// A miss is the steady state; the endgame strategy takes over.
		phase = PhaseEndgame
		stats.Phase = PhaseEndgame
	}

	var res SearchResult
	var err error
	switch phase {
	case PhaseOpening:
		res, err = o.searchOpening(b, legalMoves, depth, timeLimitMs, &stats)
	case PhaseMiddlegame:
		res, err = o.searchMiddlegame(b, legalMoves, depth, timeLimitMs, &stats)
	case PhaseEndgame:
		res, err = o.searchEndgame(b, legalMoves, depth, timeLimitMs, &stats)
	case PhaseTablebase:
		// Rewritten to PhaseEndgame above; keep the switch exhaustive.
		err = errors.New("tablebase phase reached dispatch")
	}
	if err != nil {
		o.finish(&stats, start, SearchResult{})
		return SearchResult{}, stats, err
	}

	// Weight update: exactly once per call, strictly after the search that
	// produced this entropy sample.
	o.controller.RecordAndUpdate(stats.Entropy)

	o.log.Debug().
		Str("phase", stats.Phase.String()).
		Float64("entropy", stats.Entropy).
		Float64("value", res.Value).
		Msg("search complete")

	o.finish(&stats, start, res)
	return res, stats, nil
}

// Diagnostics is a read-only snapshot of the most recent Search call plus
// the controller state, for external monitoring.
func (o *Orchestrator) Diagnostics() DiagnosticsSnapshot {
	return DiagnosticsSnapshot{
		Phase:             o.lastStats.Phase,
		Nodes:             o.lastStats.Nodes,
		TimeMs:            o.lastStats.TimeMs,
		Entropy:           o.lastStats.Entropy,
		BranchingFactor:   o.lastStats.BranchingFactor,
		Depth:             o.lastStats.Depth,
		TablebaseProbes:   o.lastStats.TablebaseProbes,
		Weights:           o.controller.Weights(),
		EntropyHistoryLen: o.controller.HistoryLen(),
	}
}

func (o *Orchestrator) searchOpening(b *dragontoothmg.Board, legalMoves []dragontoothmg.Move, depth, timeLimitMs int, stats *SearchStats) (SearchResult, error) {
	params := ExploratoryParams{
		Simulations: int(float64(o.cfg.BaseSimulations) * o.cfg.OpeningWidth),
		Exploration: openingExploration,
		AddNoise:    true,
	}
	res, err := o.exploratory.Search(b, timeLimitMs, params)
	res, err = o.ensureMove(res, err, "exploratory", func() (SearchResult, error) {
		return o.tactical.Search(b, timeLimitMs, TacticalParams{
			MaxDepth:           depth,
			Quiescence:         true,
			LateMoveReductions: true,
			NullMovePruning:    true,
			Evaluator:          o.eval,
		})
	})
	if err != nil {
		return res, err
	}

	stats.BranchingFactor = res.BranchingFactor
	// No blending in the opening, but the controller still needs its
	// entropy sample.
	stats.Entropy = MoveEntropy(b, o.eval, legalMoves)
	return res, nil
}

func (o *Orchestrator) searchMiddlegame(b *dragontoothmg.Board, legalMoves []dragontoothmg.Move, depth, timeLimitMs int, stats *SearchStats) (SearchResult, error) {
	params := TacticalParams{
		MaxDepth:           int(float64(depth) * o.cfg.MiddlegameFocus),
		Quiescence:         true,
		LateMoveReductions: true,
		NullMovePruning:    true,
		Evaluator:          o.eval,
	}
	if o.cfg.AdaptiveBranching {
		weights := o.controller.Weights()
		params.Weights = &weights
	}

	res, err := o.tactical.Search(b, timeLimitMs, params)
	res, err = o.ensureMove(res, err, "tactical", func() (SearchResult, error) {
		return o.exploratory.Search(b, timeLimitMs, ExploratoryParams{
			Simulations: o.cfg.BaseSimulations,
			Exploration: verifyExploration,
		})
	})
	if err != nil {
		return res, err
	}

	stats.BranchingFactor = float64(len(legalMoves))
	entropy := MoveEntropy(b, o.eval, legalMoves)
	stats.Entropy = entropy

	// High uncertainty plus spare time buys a second opinion. Only the
	// reported value is blended; the move stays the tactical searcher's.
	if entropy > blendEntropyThreshold && timeLimitMs > blendMinTimeLimitMs {
		verifyMs := int(blendTimeFraction * float64(timeLimitMs))
		verification, verr := o.exploratory.Search(b, verifyMs, ExploratoryParams{
			Simulations: o.cfg.BaseSimulations,
			Exploration: verifyExploration,
		})
		if verr != nil {
			o.log.Debug().Err(verr).Msg("verification search failed, keeping tactical value")
		} else {
			stats.Nodes += verification.Nodes
			if Abs(verification.Value-res.Value) > blendDisagreementThreshold {
				blended := blendPrimaryWeight*res.Value + (1-blendPrimaryWeight)*verification.Value
				o.log.Debug().
					Float64("tactical", res.Value).
					Float64("exploratory", verification.Value).
					Float64("blended", blended).
					Msg("value blend")
				res.Value = blended
			}
		}
	}
	return res, nil
}

func (o *Orchestrator) searchEndgame(b *dragontoothmg.Board, legalMoves []dragontoothmg.Move, depth, timeLimitMs int, stats *SearchStats) (SearchResult, error) {
	params := TacticalParams{
		MaxDepth: int(float64(depth) * o.cfg.EndgamePrecision),
		// Precision over speed: no reductions, no null move.
		Quiescence:         true,
		LateMoveReductions: false,
		NullMovePruning:    false,
		Evaluator:          o.endgameEval,
	}
	res, err := o.tactical.Search(b, timeLimitMs, params)
	res, err = o.ensureMove(res, err, "tactical", func() (SearchResult, error) {
		return o.exploratory.Search(b, timeLimitMs, ExploratoryParams{
			Simulations: o.cfg.BaseSimulations,
			Exploration: verifyExploration,
		})
	})
	if err != nil {
		return res, err
	}

	stats.BranchingFactor = float64(len(legalMoves))
	stats.Entropy = MoveEntropy(b, o.eval, legalMoves)
	return res, nil
}

// ensureMove accepts the primary searcher's result when it carries a move,
// and otherwise falls back to the phase's alternate searcher. The caller
// only reaches this on positions known to have legal moves, so a moveless
// result is a collaborator failure, never a terminal signal.
func (o *Orchestrator) ensureMove(res SearchResult, err error, label string, alt func() (SearchResult, error)) (SearchResult, error) {
	if err == nil && res.HasMove {
		return res, nil
	}
	if err != nil {
		o.log.Warn().Err(err).Str("searcher", label).Msg("searcher failed, falling back")
	} else {
		o.log.Warn().Str("searcher", label).Msg("searcher returned no move, falling back")
	}

	altRes, altErr := alt()
	if altErr == nil && altRes.HasMove {
		altRes.Nodes += res.Nodes
		return altRes, nil
	}

	if err == nil {
		err = errors.New("no move returned")
	}
	if altErr == nil {
		altErr = errors.New("no move returned")
	}
	return SearchResult{}, errors.Wrapf(ErrAllSearchersFailed, "%s: %v; fallback: %v", label, err, altErr)
}

func (o *Orchestrator) finish(stats *SearchStats, start time.Time, res SearchResult) {
	stats.Nodes += res.Nodes
	stats.Depth = res.Depth
	stats.TimeMs = time.Since(start).Milliseconds()
	o.lastStats = *stats
}
