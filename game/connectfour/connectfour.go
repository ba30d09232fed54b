// Package connectfour drops pieces into columns of a 7x6 grid; four in a row wins.
package connectfour

import (
	"fmt"

	"aitrees/game"
	"aitrees/game/grid"
)

const (
	Width     = 7
	Height    = 6
	WinLength = 4
)

type State struct {
	players   grid.Players
	justActed game.Actor
	board     grid.Board
}

// New returns an empty board where first moves next.
func New(first, second game.Actor) State {
	return State{
		players:   grid.Players{A: first, B: second},
		justActed: second,
		board:     grid.NewBoard(Width, Height),
	}
}

func (s State) Board() grid.Board {
	return s.board
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

// LegalActions has one action per column that still has room.
func (s State) LegalActions() []game.Action {
	if _, won := s.board.Winner(WinLength); won {
		return nil
	}
	actor := s.NextActor()
	actions := []game.Action{}
	for col := 0; col < Width; col++ {
		if row, ok := s.lowestEmpty(col); ok {
			actions = append(actions, Action{actor: actor, from: s, column: col, row: row})
		}
	}
	return actions
}

func (s State) IsTerminal() bool {
	_, won := s.board.Winner(WinLength)
	return won || s.board.Full()
}

func (s State) lowestEmpty(col int) (int, bool) {
	for row := 0; row < Height; row++ {
		if s.board.IsEmpty(col, row) {
			return row, true
		}
	}
	return 0, false
}

type Action struct {
	actor  game.Actor
	from   State
	column int
	row    int
}

// NewAction drops a piece for actor into column. It returns false if the column is full.
func NewAction(actor game.Actor, from State, column int) (Action, bool) {
	if column < 0 || column >= Width {
		return Action{}, false
	}
	row, ok := from.lowestEmpty(column)
	if !ok {
		return Action{}, false
	}
	return Action{actor: actor, from: from, column: column, row: row}, true
}

func (a Action) Actor() game.Actor { return a.actor }

func (a Action) Apply() game.State {
	return State{
		players:   a.from.players,
		justActed: a.actor,
		board:     a.from.board.Place(a.column, a.row, a.actor.Name()),
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s -> column[%d]", a.actor, a.column)
}
