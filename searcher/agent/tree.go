package agent

import (
	"context"
	"errors"
	"math"

	"aitrees/experiments/metrics"
	"aitrees/game"
	"aitrees/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(a *treeAgent)

type treeAgent struct {
	mcts        *searcher.MCTS
	retain      bool
	temperature float64
	rng         *rand.Rand
	root        searcher.Node
}

// WithRetainTree keeps the searched subtree between moves.
func WithRetainTree(retain bool) Option {
	return func(a *treeAgent) {
		a.retain = retain
	}
}

// WithTemperature samples the played child in proportion to visits^(1/temperature).
// Zero plays the most visited child.
func WithTemperature(temperature float64) Option {
	return func(a *treeAgent) {
		if temperature > 0 {
			a.temperature = temperature
		}
	}
}

// WithSamplingSeed seeds the temperature sampling.
func WithSamplingSeed(seed uint64) Option {
	return func(a *treeAgent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// NewTreeAgent returns an agent that plays the result of a tree search.
func NewTreeAgent(mcts *searcher.MCTS, options ...Option) Agent {
	a := &treeAgent{mcts: mcts, rng: rand.New(rand.NewSource(1))}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *treeAgent) FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	root := a.root
	a.root = searcher.Node{}
	if !a.retain {
		root = searcher.Node{}
	}
	if !root.IsZero() && !game.Equal(root.State(), state) {
		log.Warn().Msg("retained tree does not hold the current state, starting a new tree")
		root = searcher.Node{}
	}

	best, metric, err := a.mcts.Search(ctx, root, state)
	if errors.Is(err, searcher.ErrNoRecommendation) {
		return nil, metric, nil
	}
	if err != nil {
		return nil, metric, err
	}

	if a.temperature > 0 {
		best = sample(best.Parent().Children(), a.temperature, a.rng)
	}
	if a.retain {
		a.root = best.AsRoot()
	}
	return best.Action(), metric, nil
}

func (a *treeAgent) Observe(state game.State) {
	if a.root.IsZero() {
		return
	}
	next, err := searcher.Advance(a.root, state)
	if err != nil {
		log.Warn().Err(err).Msg("dropping retained tree")
		a.root = searcher.Node{}
		return
	}
	a.root = next
}

func adjustTemperature(children []searcher.Node, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(children))
	for i, child := range children {
		prob := math.Pow(float64(child.Visits()), exponent)
		sum += prob
		policy[i] = prob
	}
	if sum == 0 {
		for i := range policy {
			policy[i] = 1.0 / float64(len(policy))
		}
		return policy
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(children []searcher.Node, temperature float64, rng *rand.Rand) searcher.Node {
	policy := adjustTemperature(children, temperature)
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return children[i]
		}
	}
	return children[len(children)-1] // Fallback in case of rounding errors
}
