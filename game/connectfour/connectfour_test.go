package connectfour

import (
	"testing"

	"aitrees/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var (
	red    = game.NewActor("R")
	yellow = game.NewActor("Y")
)

func drop(t *testing.T, state game.State, actor game.Actor, column int) game.State {
	t.Helper()
	action, ok := NewAction(actor, state.(State), column)
	require.True(t, ok, "Column %d should accept a piece", column)
	return action.Apply()
}

func TestLegalActions(t *testing.T) {
	t.Run("one action per column", func(t *testing.T) {
		state := New(red, yellow)
		require.Len(t, state.LegalActions(), Width)
	})

	t.Run("full column is skipped", func(t *testing.T) {
		var state game.State = New(red, yellow)
		actor := red
		for i := 0; i < Height; i++ {
			state = drop(t, state, actor, 0)
			actor = state.(State).NextActor()
		}

		require.Len(t, state.LegalActions(), Width-1, "Full column should not be playable")
		_, ok := NewAction(red, state.(State), 0)
		require.False(t, ok, "Full column should reject a piece")
	})
}

func TestGravity(t *testing.T) {
	var state game.State = New(red, yellow)
	state = drop(t, state, red, 3)
	state = drop(t, state, yellow, 3)

	board := state.(State).Board()
	require.Equal(t, "R", board.At(3, 0), "First piece should land on the bottom row")
	require.Equal(t, "Y", board.At(3, 1), "Second piece should stack on the first")
}

func TestWins(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		var state game.State = New(red, yellow)
		for col := 0; col < WinLength; col++ {
			state = drop(t, state, red, col)
		}
		require.Equal(t, game.Win, state.Result(red))
		require.True(t, state.IsTerminal())
		require.Empty(t, state.LegalActions())
	})

	t.Run("vertical", func(t *testing.T) {
		var state game.State = New(red, yellow)
		for i := 0; i < WinLength; i++ {
			state = drop(t, state, yellow, 6)
		}
		require.Equal(t, game.Win, state.Result(yellow))
		require.Equal(t, game.Loss, state.Result(red))
	})

	t.Run("diagonal", func(t *testing.T) {
		var state game.State = New(red, yellow)
		// Staircase of yellow supports under red's diagonal
		for col := 1; col < WinLength; col++ {
			for i := 0; i < col; i++ {
				state = drop(t, state, yellow, col)
			}
		}
		for col := 0; col < WinLength; col++ {
			state = drop(t, state, red, col)
		}
		require.Equal(t, game.Win, state.Result(red), "Rising diagonal should win")
	})

	t.Run("three is not enough", func(t *testing.T) {
		var state game.State = New(red, yellow)
		for col := 0; col < WinLength-1; col++ {
			state = drop(t, state, red, col)
		}
		require.False(t, state.IsTerminal())
		require.Equal(t, game.Draw, state.Result(red))
	})
}

func TestRandomGamesEndConsistently(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		final := game.Playout(New(red, yellow), rng, nil)

		require.True(t, final.IsTerminal())
		require.Empty(t, final.LegalActions(), "Terminal state should have no legal actions")
	}
}
