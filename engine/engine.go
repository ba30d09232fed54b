package engine

import (
	"context"
	"errors"

	"aitrees/experiments/metrics"
)

const MaxMoves = 10000

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrNoAgent       = errors.New("no agent for actor")
)

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached.
	// The winner is empty on a draw.
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
