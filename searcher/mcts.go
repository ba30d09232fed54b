package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"aitrees/experiments/metrics"
	"aitrees/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultIterations = 1000
	DefaultTraceDepth = 1
)

var (
	ErrInvalidConfig    = errors.New("invalid search configuration")
	ErrNoRecommendation = errors.New("no action to recommend")
	ErrStateMismatch    = errors.New("tree root does not hold the current state")
)

type Option func(m *MCTS)

type MCTS struct {
	iterations  int
	exploration float64
	policy      Policy
	verbose     bool
	traceDepth  int
	trace       func(string)
	yield       func()
	rng         game.Rand
	metrics     metrics.Collector
}

// WithIterations sets the number of iterations per search. It must be positive.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithExploration sets the UCT exploration constant used when no policy is given.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

func WithPolicy(policy Policy) Option {
	return func(m *MCTS) {
		m.policy = policy
	}
}

// WithVerbose dumps the tree through the trace sink after each search.
func WithVerbose(verbose bool) Option {
	return func(m *MCTS) {
		m.verbose = verbose
	}
}

// WithTraceDepth limits verbose tree dumps to depth levels below the root; negative means all.
func WithTraceDepth(depth int) Option {
	return func(m *MCTS) {
		m.traceDepth = depth
	}
}

// WithTraceSink receives verbose output line by line instead of the debug log.
func WithTraceSink(sink func(string)) Option {
	return func(m *MCTS) {
		m.trace = sink
	}
}

// WithYield runs fn between rollout moves.
func WithYield(fn func()) Option {
	return func(m *MCTS) {
		m.yield = fn
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng game.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		traceDepth:  DefaultTraceDepth,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if m.iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, m.iterations)
	}
	if math.IsNaN(m.exploration) || math.IsInf(m.exploration, 0) || m.exploration < 0 {
		return nil, fmt.Errorf("%w: exploration constant must be finite and non-negative, got %v", ErrInvalidConfig, m.exploration)
	}
	if m.policy == nil {
		m.policy = UCT{C: m.exploration}
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m, nil
}

func (m *MCTS) Iterations() int {
	return m.iterations
}

func (m *MCTS) Policy() Policy {
	return m.policy
}

// NewRoot builds a fresh tree for state with the configured policy and random source.
func (m *MCTS) NewRoot(state game.State) Node {
	return NewRoot(state, m.policy, m.rng)
}

// Search runs the configured number of iterations from root and returns its most visited
// child. A zero root is replaced by a fresh tree for state. The context is checked
// between iterations; on cancellation the best child found so far is returned along
// with the context error.
func (m *MCTS) Search(ctx context.Context, root Node, state game.State) (Node, metrics.SearchMetric, error) {
	if root.IsZero() {
		root = m.NewRoot(state)
		m.metrics.SetTreeReused(false)
	} else {
		if !game.Equal(root.State(), state) {
			return Node{}, metrics.SearchMetric{}, fmt.Errorf("%w:\n%s\nvs\n%s", ErrStateMismatch, root.State(), state)
		}
		m.metrics.SetTreeReused(root.Visits() > 0)
	}

	m.metrics.Start(m.iterations, fmt.Sprint(root.Policy()))
	var err error
	for i := 0; i < m.iterations; i++ {
		if err = ctx.Err(); err != nil {
			err = fmt.Errorf("search stopped after %d of %d iterations: %w", i, m.iterations, err)
			break
		}
		m.iterate(root)
		m.metrics.AddIteration()
	}
	metric := m.metrics.Complete()
	metric.TreeSize = root.Size()
	metric.RootVisits = root.Visits()

	if m.verbose {
		m.emit(DisplayTree(root, m.traceDepth))
		m.emit(DisplayChildren(root))
	}

	best, ok := root.BestChild()
	if err != nil {
		return best, metric, err
	}
	if !ok {
		return Node{}, metric, ErrNoRecommendation
	}
	return best, metric, nil
}

func (m *MCTS) iterate(root Node) {
	node := selectThenExpand(root)
	final := game.Playout(node.State().Clone(), m.rng, m.yield)
	if final.IsTerminal() {
		m.metrics.AddFullPlayout()
	}
	backup(node, final)
}

func selectThenExpand(root Node) Node {
	node := root
	for node.FullyExpanded() && node.HasChildren() {
		node = node.SelectChild()
	}
	// A leaf with nothing left to try is simulated as is
	if action, ok := node.UntriedAction(); ok {
		node = node.AddChild(action, action.Apply())
	}
	return node
}

// backup scores every node on the path to the root from the view of its own actor.
func backup(node Node, final game.State) {
	for !node.IsZero() {
		node.Update(final.Result(node.Actor()))
		node = node.Parent()
	}
}

func (m *MCTS) emit(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if m.trace != nil {
			m.trace(line)
		} else {
			log.Debug().Msg(line)
		}
	}
}
