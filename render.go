package main

import (
	"fmt"

	"aitrees/game"
	"aitrees/game/grid"

	"github.com/muesli/termenv"
)

type boarded interface {
	Board() grid.Board
}

// renderer colours each actor's cells on the terminal.
type renderer struct {
	out    *termenv.Output
	colors map[string]termenv.Color
}

func newRenderer(out *termenv.Output, first, second game.Actor) *renderer {
	return &renderer{
		out: out,
		colors: map[string]termenv.Color{
			first.Name():  out.Color("1"),
			second.Name(): out.Color("4"),
		},
	}
}

func (r *renderer) render(state game.State) string {
	b, ok := state.(boarded)
	if !ok {
		return state.String()
	}
	return b.Board().Render(func(name string) string {
		if name == "" {
			return r.out.String("[ ]").Faint().String()
		}
		cell := r.out.String(fmt.Sprintf("[%s]", name))
		if color, ok := r.colors[name]; ok {
			cell = cell.Foreground(color)
		}
		return cell.Bold().String()
	})
}
