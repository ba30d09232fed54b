package game

import "fmt"

// Actor identifies a participant. Actors compare equal when their names match.
type Actor struct {
	name string
}

func NewActor(name string) Actor {
	return Actor{name: name}
}

func (a Actor) Name() string {
	return a.name
}

func (a Actor) String() string {
	return a.name
}

// Outcome of a game from one actor's perspective
type Outcome int8

const (
	Loss Outcome = -1
	Draw Outcome = 0
	Win  Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("outcome(%d)", int8(o))
	}
}

// Action is a move by an actor. It remembers the state it was generated from, so
// Apply needs no arguments and never modifies that state.
type Action interface {
	Actor() Actor
	Apply() State
	String() string
}

// State should be immutable - operations on State always return a new copy
type State interface {
	// JustActed is the actor whose move produced this state. The actor to move is the other one.
	JustActed() Actor
	// LegalActions lists the moves of the side to move. Empty means no move is possible.
	LegalActions() []Action
	IsTerminal() bool
	// Result is only guaranteed to be meaningful once the state is terminal
	Result(actor Actor) Outcome
	Clone() State
	// Key is a canonical encoding of the state used for equality
	Key() string
	String() string
}

// Equal compares states by their canonical encoding.
func Equal(a, b State) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Rand is the source of randomness used for shuffles and rollouts.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}
