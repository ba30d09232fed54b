// Package ox is noughts and crosses on a 3x3 grid.
package ox

import (
	"fmt"

	"aitrees/game"
	"aitrees/game/grid"
)

const (
	Size      = 3
	WinLength = 3
)

type State struct {
	players   grid.Players
	justActed game.Actor
	board     grid.Board
}

// New returns an empty board where first moves next and second is recorded as having just acted.
func New(first, second game.Actor) State {
	return State{
		players:   grid.Players{A: first, B: second},
		justActed: second,
		board:     grid.NewBoard(Size, Size),
	}
}

func (s State) Board() grid.Board {
	return s.board
}

func (s State) Players() grid.Players {
	return s.players
}

func (s State) JustActed() game.Actor {
	return s.justActed
}

func (s State) NextActor() game.Actor {
	return s.players.Next(s.justActed)
}

func (s State) Clone() game.State {
	return State{players: s.players, justActed: s.justActed, board: s.board.Clone()}
}

func (s State) Key() string {
	return s.justActed.Name() + "|" + s.board.Key()
}

func (s State) String() string {
	return s.board.String()
}

func (s State) Result(actor game.Actor) game.Outcome {
	return grid.Result(s.board, WinLength, actor)
}

func (s State) won() bool {
	_, ok := s.board.Winner(WinLength)
	return ok
}

func (s State) LegalActions() []game.Action {
	if s.won() {
		return nil
	}
	actor := s.NextActor()
	actions := []game.Action{}
	for _, cell := range s.board.EmptyCells() {
		actions = append(actions, Action{actor: actor, from: s, x: cell.X, y: cell.Y})
	}
	return actions
}

func (s State) IsTerminal() bool {
	return s.won() || s.board.Full()
}

type Action struct {
	actor game.Actor
	from  State
	x, y  int
}

// NewAction marks (x, y) for actor on from. Turn order is not checked.
func NewAction(actor game.Actor, from State, x, y int) Action {
	return Action{actor: actor, from: from, x: x, y: y}
}

func (a Action) Actor() game.Actor { return a.actor }

func (a Action) Apply() game.State {
	return State{
		players:   a.from.players,
		justActed: a.actor,
		board:     a.from.board.Place(a.x, a.y, a.actor.Name()),
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s -> x[%d] y[%d]", a.actor, a.x, a.y)
}
