package grid

import "aitrees/game"

// Players is the pair of actors in a two-player grid game.
type Players struct {
	A, B game.Actor
}

// Next returns the actor to move after justActed.
func (p Players) Next(justActed game.Actor) game.Actor {
	if justActed == p.A {
		return p.B
	}
	return p.A
}
