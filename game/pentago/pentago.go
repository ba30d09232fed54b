// Package pentago is a 6x6 five-in-a-row game where a move may rotate one 3x3 block.
package pentago

import (
	"fmt"

	"aitrees/game"
	"aitrees/game/grid"
)

//	5: [ ][ ][ ]|[ ][ ][ ]
//	4: [ ][2][ ]|[ ][3][ ]
//	3: [ ][ ][ ]|[ ][ ][ ]
//	   -------------------
//	2: [ ][ ][ ]|[ ][ ][ ]
//	1: [ ][0][ ]|[ ][1][ ]
//	0: [ ][ ][ ]|[ ][ ][ ]
//	    0  1  2   3  4  5
const (
	Size      = 6
	WinLength = 5
)

// NoRotation marks an action that only places a piece.
const NoRotation = -1

var blockCentres = []grid.Cell{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 1, Y: 4}, {X: 4, Y: 4}}

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
		board:     grid.NewBoard(Size, Size),
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

func (s State) IsTerminal() bool {
	_, won := s.board.Winner(WinLength)
	return won || s.board.Full()
}

// LegalActions places on every empty cell, either without rotation (offered once when
// some block is neutral) or followed by either rotation of a non-neutral block.
func (s State) LegalActions() []game.Action {
	if _, won := s.board.Winner(WinLength); won {
		return nil
	}

	neutral := make([]bool, len(blockCentres))
	for i := range blockCentres {
		neutral[i] = s.IsBlockNeutral(i)
	}

	actor := s.NextActor()
	actions := []game.Action{}
	for _, cell := range s.board.EmptyCells() {
		addedPlacement := false
		for block := range blockCentres {
			if neutral[block] {
				if !addedPlacement {
					addedPlacement = true
					actions = append(actions, Action{actor: actor, from: s, x: cell.X, y: cell.Y, block: NoRotation})
				}
				continue
			}
			actions = append(actions,
				Action{actor: actor, from: s, x: cell.X, y: cell.Y, block: block, dir: -1},
				Action{actor: actor, from: s, x: cell.X, y: cell.Y, block: block, dir: 1},
			)
		}
	}
	return actions
}

// IsBlockNeutral reports whether rotating the block cannot change the board, which is
// the case when the eight cells around its centre are empty.
func (s State) IsBlockNeutral(block int) bool {
	centre := blockCentres[block]
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !s.board.IsEmpty(centre.X+dx, centre.Y+dy) {
				return false
			}
		}
	}
	return true
}

type Action struct {
	actor game.Actor
	from  State
	x, y  int
	block int
	dir   int
}

// NewAction places a piece for actor at (x, y) and then rotates block in dir (+1
// clockwise, -1 anticlockwise). Pass NoRotation as block to skip the rotation.
func NewAction(actor game.Actor, from State, x, y, block, dir int) Action {
	return Action{actor: actor, from: from, x: x, y: y, block: block, dir: dir}
}

func (a Action) Actor() game.Actor { return a.actor }

func (a Action) Apply() game.State {
	board := a.from.board.Place(a.x, a.y, a.actor.Name())
	if a.block != NoRotation {
		board = rotate(board, blockCentres[a.block], a.dir)
	}
	return State{players: a.from.players, justActed: a.actor, board: board}
}

func (a Action) String() string {
	return fmt.Sprintf("%s -> x[%d] y[%d] rot[%d] dir[%d]", a.actor, a.x, a.y, a.block, a.dir)
}

func rotate(board grid.Board, c grid.Cell, dir int) grid.Board {
	nw := grid.Cell{X: c.X - 1, Y: c.Y + 1}
	ne := grid.Cell{X: c.X + 1, Y: c.Y + 1}
	se := grid.Cell{X: c.X + 1, Y: c.Y - 1}
	sw := grid.Cell{X: c.X - 1, Y: c.Y - 1}
	n := grid.Cell{X: c.X, Y: c.Y + 1}
	e := grid.Cell{X: c.X + 1, Y: c.Y}
	s := grid.Cell{X: c.X, Y: c.Y - 1}
	w := grid.Cell{X: c.X - 1, Y: c.Y}

	// Clockwise: each corner and edge moves one quarter turn
	from := []grid.Cell{nw, ne, se, sw, w, n, e, s}
	to := []grid.Cell{ne, se, sw, nw, n, e, s, w}
	if dir < 0 {
		from, to = to, from
	}
	return board.Permute(from, to)
}
