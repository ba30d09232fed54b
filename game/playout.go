package game

// Playout plays uniformly random legal actions from state until it is terminal or no
// actions remain, and returns the final state. yield, if set, runs between moves.
func Playout(state State, rng Rand, yield func()) State {
	actions := state.LegalActions()
	for len(actions) > 0 && !state.IsTerminal() {
		action := actions[rng.Intn(len(actions))] // Random rollout policy
		state = action.Apply()
		if yield != nil {
			yield()
		}
		actions = state.LegalActions()
	}
	return state
}

// RandomAction picks a uniformly random legal action, or returns false if there is none.
func RandomAction(state State, rng Rand) (Action, bool) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, false
	}
	return actions[rng.Intn(len(actions))], true
}
