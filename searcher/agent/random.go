package agent

import (
	"context"

	"aitrees/experiments/metrics"
	"aitrees/game"
)

type randomAgent struct {
	rng game.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
func NewRandomAgent(rng game.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) FindAction(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	action, _ := game.RandomAction(state, a.rng)
	return action, metrics.SearchMetric{Policy: "random"}, nil
}

func (a *randomAgent) Observe(game.State) {}
