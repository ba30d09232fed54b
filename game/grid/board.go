package grid

import (
	"strings"

	"aitrees/game"
)

// Cell is a board coordinate. y grows upwards, so (0, 0) is the bottom left.
type Cell struct {
	X, Y int
}

// Board is an immutable width x height grid of actor names ("" for empty).
type Board struct {
	width  int
	height int
	cells  []string
}

func NewBoard(width, height int) Board {
	if width <= 0 || height <= 0 {
		panic("board dimensions must be positive")
	}
	return Board{width: width, height: height, cells: make([]string, width*height)}
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

func (b Board) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b Board) At(x, y int) string {
	return b.cells[y*b.width+x]
}

func (b Board) IsEmpty(x, y int) bool {
	return b.At(x, y) == ""
}

// Place returns a copy of the board with name put on (x, y).
func (b Board) Place(x, y int, name string) Board {
	next := b.Clone()
	next.cells[y*b.width+x] = name
	return next
}

// Permute returns a copy where every cell in to receives the content of the matching
// cell in from. Contents are read from the receiver, so cycles need no temporary.
func (b Board) Permute(from, to []Cell) Board {
	next := b.Clone()
	for i := range from {
		next.cells[to[i].Y*b.width+to[i].X] = b.At(from[i].X, from[i].Y)
	}
	return next
}

func (b Board) Clone() Board {
	cells := make([]string, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

func (b Board) EmptyCells() []Cell {
	cells := []Cell{}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.IsEmpty(x, y) {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

func (b Board) Full() bool {
	for _, name := range b.cells {
		if name == "" {
			return false
		}
	}
	return true
}

// Key encodes the board row by row, top row first, with '#' for empty cells.
func (b Board) Key() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			name := b.At(x, y)
			if name == "" {
				name = "#"
			}
			sb.WriteString(name)
			sb.WriteByte(',')
		}
		sb.WriteByte('/')
	}
	return sb.String()
}

// String draws the board with the top row first, one "[name]" or "[?]" per cell.
func (b Board) String() string {
	return b.Render(func(name string) string {
		if name == "" {
			return "[?]"
		}
		return "[" + name + "]"
	})
}

// Render draws the board top row first, formatting each cell with cell.
func (b Board) Render(cell func(name string) string) string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			sb.WriteString(cell(b.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	vertical   = Cell{X: 0, Y: 1}
	horizontal = Cell{X: 1, Y: 0}
	diagonals  = []Cell{
		{X: 1, Y: 1},  // up right
		{X: -1, Y: 1}, // up left
	}
)

// Winner finds the first run of length equal names and returns its owner.
// Columns are scanned left to right, then rows bottom up, then diagonals from each
// start cell column by column, up right before up left. When both actors own a run the
// first one found wins.
func (b Board) Winner(length int) (string, bool) {
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if b.run(x, y, vertical, length) {
				return b.At(x, y), true
			}
		}
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.run(x, y, horizontal, length) {
				return b.At(x, y), true
			}
		}
	}
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			for _, d := range diagonals {
				if b.run(x, y, d, length) {
					return b.At(x, y), true
				}
			}
		}
	}
	return "", false
}

func (b Board) run(x, y int, d Cell, length int) bool {
	name := b.At(x, y)
	if name == "" {
		return false
	}
	for i := 1; i < length; i++ {
		nx, ny := x+d.X*i, y+d.Y*i
		if !b.Contains(nx, ny) || b.At(nx, ny) != name {
			return false
		}
	}
	return true
}

// Result scores the board for actor: Win if actor owns a run, Loss if the opponent does.
func Result(b Board, length int, actor game.Actor) game.Outcome {
	winner, ok := b.Winner(length)
	switch {
	case !ok:
		return game.Draw
	case winner == actor.Name():
		return game.Win
	default:
		return game.Loss
	}
}
