package experiments

import (
	"fmt"
	"sort"

	"aitrees/game"
	"aitrees/game/connectfour"
	"aitrees/game/ox"
	"aitrees/game/pentago"
)

// Game is a playable entry of the catalogue.
type Game struct {
	Name   string
	First  game.Actor
	Second game.Actor
	New    func(first, second game.Actor) game.State
}

var catalogue = map[string]Game{
	"ox": {
		Name:   "ox",
		First:  game.NewActor("X"),
		Second: game.NewActor("O"),
		New:    func(first, second game.Actor) game.State { return ox.New(first, second) },
	},
	"connectfour": {
		Name:   "connectfour",
		First:  game.NewActor("R"),
		Second: game.NewActor("Y"),
		New:    func(first, second game.Actor) game.State { return connectfour.New(first, second) },
	},
	"pentago": {
		Name:   "pentago",
		First:  game.NewActor("W"),
		Second: game.NewActor("B"),
		New:    func(first, second game.Actor) game.State { return pentago.New(first, second) },
	},
}

func LookupGame(name string) (Game, error) {
	g, ok := catalogue[name]
	if !ok {
		return Game{}, fmt.Errorf("%w: unknown game %q, expected one of %v", ErrInvalidExperiment, name, GameNames())
	}
	return g, nil
}

func GameNames() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
