package engine

import (
	"context"
	"fmt"
	"time"

	"aitrees/experiments/metrics"
	"aitrees/game"
	"aitrees/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

var _ Engine = (*Local)(nil)

// Local plays a game between in-process agents keyed by the actor they play.
type Local struct {
	state    game.State
	agents   map[game.Actor]agent.Agent
	maxMoves int
	onMove   func(step int, action game.Action, state game.State)
}

func WithMaxMoves(moves int) Option {
	return func(e *Local) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithOnMove calls fn after every move with the action played and the new state.
func WithOnMove(fn func(step int, action game.Action, state game.State)) Option {
	return func(e *Local) {
		e.onMove = fn
	}
}

func NewLocal(initial game.State, agents map[game.Actor]agent.Agent, options ...Option) (*Local, error) {
	if initial == nil {
		return nil, fmt.Errorf("initial state is required")
	}
	if len(agents) < 2 {
		return nil, fmt.Errorf("need at least two agents, got %d", len(agents))
	}
	e := &Local{
		state:    initial,
		agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

func (e *Local) State() game.State {
	return e.state
}

func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	for step := 1; step <= e.maxMoves && !e.state.IsTerminal(); step++ {
		actions := e.state.LegalActions()
		if len(actions) == 0 {
			gameMetric.Stalled = true
			break
		}
		actor := actions[0].Actor()
		player, ok := e.agents[actor]
		if !ok {
			return "", gameMetric, moveMetrics, fmt.Errorf("%w %s", ErrNoAgent, actor)
		}
		if step == 1 {
			gameMetric.FirstActor = actor.Name()
			log.Debug().Msgf("%s is starting", actor)
		}

		action, searchMetric, err := player.FindAction(ctx, e.state)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("failed to find move %d for %s: %w", step, actor, err)
		}
		if action == nil {
			log.Warn().Msgf("%s has no action to play, stalling at move %d", actor, step)
			gameMetric.Stalled = true
			break
		}
		next, err := play(e.state, actions, actor, action)
		if err != nil {
			return "", gameMetric, moveMetrics, err
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Actor:        actor.Name(),
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
		for _, a := range e.agents {
			a.Observe(next)
		}
		e.state = next
		if e.onMove != nil {
			e.onMove(step, action, next)
		}
	}

	gameMetric.Winner = e.winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}

// play applies action after checking it is one of the legal actions of actor.
func play(state game.State, legal []game.Action, actor game.Actor, action game.Action) (game.State, error) {
	if action.Actor() != actor {
		return nil, fmt.Errorf("%w: %s played %q on %s's turn", ErrIllegalAction, action.Actor(), action, actor)
	}
	next := action.Apply()
	for _, candidate := range legal {
		if game.Equal(candidate.Apply(), next) {
			return next, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not legal in\n%s", ErrIllegalAction, action, state)
}

func (e *Local) winner() string {
	if !e.state.IsTerminal() {
		return ""
	}
	for actor := range e.agents {
		if e.state.Result(actor) == game.Win {
			return actor.Name()
		}
	}
	return ""
}
