package agent

import (
	"context"

	"aitrees/experiments/metrics"
	"aitrees/game"
)

type Agent interface {
	// FindAction returns the action to play in state with search metrics (if collected).
	// A nil action means the agent has nothing to play.
	FindAction(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error)
	// Observe is called with the state after every move of the game, including the agent's own.
	Observe(state game.State)
}
