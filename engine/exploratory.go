package engine

import (
	"math"
	"math/rand"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

const (
	// Fraction of the root priors replaced by Dirichlet noise when the
	// caller asks for exploration noise.
	rootNoiseFraction = 0.25
	// Fallback PUCT constant when the caller passes none.
	fallbackExploration = 1.5
	// How often the simulation loop polls the soft deadline.
	mctsTimePollMask = 63
)

var errNilMCTSEvaluator = errors.New("exploratory search: nil evaluator")

type mctsNode struct {
	move     dragontoothmg.Move
	prior    float64
	visits   uint32
	valueSum float64 // pawns, from the perspective of the player who moved into this node
	children []mctsNode
	expanded bool
	terminal bool
}

// MCTSSearcher is the breadth-first exploratory collaborator: PUCT tree
// search with move-ordering priors and evaluator-backed leaf values instead
// of random playouts. Values stay in pawn units so tactical and exploratory
// scores compare and blend directly.
//
// Not safe for concurrent use of a single instance.
type MCTSSearcher struct {
	eval  Evaluator
	rng   *rand.Rand
	nodes uint64
}

func NewMCTSSearcher(eval Evaluator, seed int64) *MCTSSearcher {
	return &MCTSSearcher{
		eval: eval,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (m *MCTSSearcher) Search(b *dragontoothmg.Board, timeLimitMs int, params ExploratoryParams) (SearchResult, error) {
	if m.eval == nil {
		return SearchResult{}, errNilMCTSEvaluator
	}

	rootMoves := b.GenerateLegalMoves()
	if len(rootMoves) == 0 {
		return SearchResult{Value: terminalScore(b)}, nil
	}

	m.nodes = 0
	root := &mctsNode{}
	m.expand(root, b)
	if params.AddNoise {
		m.injectRootNoise(root)
	}

	exploration := params.Exploration
	if exploration <= 0 {
		exploration = fallbackExploration
	}
	simulations := Max(params.Simulations, 1)

	tc := newTimeControl(timeLimitMs)
	maxDepth := 0
	for i := 0; i < simulations; i++ {
		if i&mctsTimePollMask == 0 && tc.Expired() {
			break
		}
		_, reached := m.simulate(root, b, exploration, 0)
		root.visits++
		maxDepth = Max(maxDepth, reached)
	}

	// Final move choice is by visit count; when the budget was too small to
	// visit anything, the priors decide.
	bestIdx := 0
	for i := range root.children {
		if root.children[i].visits > root.children[bestIdx].visits ||
			(root.children[i].visits == root.children[bestIdx].visits &&
				root.children[i].prior > root.children[bestIdx].prior) {
			bestIdx = i
		}
	}
	best := &root.children[bestIdx]

	var value float64
	if best.visits > 0 {
		value = best.valueSum / float64(best.visits)
	} else {
		value = float64(m.eval.Evaluate(b)) / 100
	}

	return SearchResult{
		Move:            best.move,
		HasMove:         true,
		Value:           value,
		Nodes:           m.nodes,
		Depth:           maxDepth,
		BranchingFactor: visitPerplexity(root),
	}, nil
}

// simulate walks one selection path, expands and evaluates the leaf, and
// backs the value up. The return value is in pawns from the perspective of
// the side to move at node's position.
func (m *MCTSSearcher) simulate(node *mctsNode, b *dragontoothmg.Board, exploration float64, depth int) (value float64, reached int) {
	m.nodes++

	if node.terminal {
		return terminalScore(b), depth
	}
	if !node.expanded {
		m.expand(node, b)
		if node.terminal {
			return terminalScore(b), depth
		}
		return float64(m.eval.Evaluate(b)) / 100, depth
	}

	childIdx := m.selectChild(node, exploration)
	child := &node.children[childIdx]

	unapply := b.Apply(child.move)
	childValue, reached := m.simulate(child, b, exploration, depth+1)
	unapply()

	// childValue is from the child's side to move; the player at this node
	// sees the negation.
	value = -childValue
	child.visits++
	child.valueSum += value
	return value, reached
}

func (m *MCTSSearcher) selectChild(node *mctsNode, exploration float64) int {
	sqrtParent := math.Sqrt(float64(Max(node.visits, 1)))

	bestIdx := 0
	bestScore := math.Inf(-1)
	for i := range node.children {
		child := &node.children[i]
		var q float64
		if child.visits > 0 {
			q = child.valueSum / float64(child.visits)
		}
		u := exploration * child.prior * sqrtParent / (1 + float64(child.visits))
		if q+u > bestScore {
			bestScore = q + u
			bestIdx = i
		}
	}
	return bestIdx
}

func (m *MCTSSearcher) expand(node *mctsNode, b *dragontoothmg.Board) {
	moves := b.GenerateLegalMoves()
	node.expanded = true
	if len(moves) == 0 {
		node.terminal = true
		return
	}

	priors := moveOrderingPriors(b, moves, DefaultBranchingWeights())
	node.children = make([]mctsNode, len(moves))
	for i := range moves {
		node.children[i] = mctsNode{move: moves[i], prior: priors[i]}
	}
}

// injectRootNoise mixes Dirichlet(1) noise into the root priors so repeated
// searches from the same position spread their visits. Dirichlet with unit
// concentration is just normalized unit-exponential draws.
func (m *MCTSSearcher) injectRootNoise(root *mctsNode) {
	noise := make([]float64, len(root.children))
	var sum float64
	for i := range noise {
		noise[i] = m.rng.ExpFloat64()
		sum += noise[i]
	}
	if sum == 0 {
		return
	}
	for i := range root.children {
		root.children[i].prior = (1-rootNoiseFraction)*root.children[i].prior +
			rootNoiseFraction*noise[i]/sum
	}
}

// visitPerplexity reports the effective branching factor of the root as the
// perplexity of its visit distribution: 1.0 when a single reply soaked up
// every visit, len(children) when they spread uniformly.
func visitPerplexity(root *mctsNode) float64 {
	var total float64
	for i := range root.children {
		total += float64(root.children[i].visits)
	}
	if total == 0 {
		return float64(len(root.children))
	}

	var entropy float64
	for i := range root.children {
		if root.children[i].visits == 0 {
			continue
		}
		p := float64(root.children[i].visits) / total
		entropy -= p * math.Log(p)
	}
	return math.Exp(entropy)
}
