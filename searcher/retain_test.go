package searcher

import (
	"context"
	"testing"

	"aitrees/game"

	"github.com/stretchr/testify/require"
)

func TestAsRoot(t *testing.T) {
	state := newMockState(3, 4)
	m := newTestMCTS(t, WithIterations(300))
	root := m.NewRoot(state)
	best, _, err := m.Search(context.Background(), root, state)
	require.NoError(t, err)

	wins, visits, untried := best.Wins(), best.Visits(), best.Untried()
	children := best.Children()
	sourceSize := root.Size()

	next := best.AsRoot()

	t.Run("keeps statistics and children", func(t *testing.T) {
		require.Equal(t, wins, next.Wins())
		require.Equal(t, visits, next.Visits())
		require.Equal(t, untried, next.Untried())
		require.Len(t, next.Children(), len(children))
		for i, child := range next.Children() {
			require.Equal(t, children[i].Visits(), child.Visits(), "Child %d visits should be kept", i)
			require.Equal(t, children[i].Wins(), child.Wins(), "Child %d wins should be kept", i)
			require.Equal(t, children[i].Action(), child.Action(), "Child %d order should be kept", i)
			require.Equal(t, next, child.Parent(), "Children should point at the new root")
		}
		require.Equal(t, best.Size(), next.Size(), "Whole subtree should be copied")
	})

	t.Run("resets depth and parent", func(t *testing.T) {
		require.Equal(t, 0, next.Depth())
		require.True(t, next.IsRoot())
		require.True(t, next.Parent().IsZero())
		require.Nil(t, next.Action(), "New root should have no incoming action")
		require.Equal(t, best.Actor(), next.Actor(), "Root keeps the actor that reached it")
		walk(next, func(n Node) {
			if !n.IsRoot() {
				require.Equal(t, n.Parent().Depth()+1, n.Depth(), "Depths should be relative to the new root")
			}
		})
	})

	t.Run("source tree is untouched", func(t *testing.T) {
		next.Update(game.Win)
		require.Equal(t, visits, best.Visits(), "Updating the new root should not touch the old node")
		require.Equal(t, 1, best.Depth())
		require.Equal(t, sourceSize, root.Size(), "Old tree should keep its shape")
		require.Equal(t, untried, best.Untried())
	})
}

func TestChildWithState(t *testing.T) {
	t.Run("existing child", func(t *testing.T) {
		root := NewRoot(newMockState(3, 2), WinRate{}, seeded(1))
		child := expand(root)

		got, err := root.ChildWithState(child.State().Clone())

		require.NoError(t, err)
		require.Equal(t, child, got, "Should match by state equality")
		require.Equal(t, 2, root.Untried(), "Matching an existing child should not expand")
	})

	t.Run("forces expansion of an unexplored move", func(t *testing.T) {
		state := newMockState(4, 2)
		root := NewRoot(state, WinRate{}, seeded(2))
		target := state.LegalActions()[3].Apply()

		got, err := root.ChildWithState(target)

		require.NoError(t, err)
		require.True(t, game.Equal(target, got.State()))
		require.Equal(t, root, got.Parent())
		require.Equal(t, 4, root.Untried()+len(root.Children()), "Pool and children should still cover every move")
	})

	t.Run("miss is reported", func(t *testing.T) {
		root := NewRoot(newMockState(3, 2), WinRate{}, seeded(1))
		stranger := mockState{acted: hero, path: "z", width: 3, depth: 2}

		_, err := root.ChildWithState(stranger)

		require.ErrorIs(t, err, ErrNoMatchingChild)
		require.True(t, root.FullyExpanded(), "Every move should have been tried")
		require.Len(t, root.Children(), 3)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("zero root stays zero", func(t *testing.T) {
		next, err := Advance(Node{}, newMockState(2, 2))
		require.NoError(t, err)
		require.True(t, next.IsZero())
	})

	t.Run("same state keeps the root", func(t *testing.T) {
		state := newMockState(2, 2)
		root := NewRoot(state, WinRate{}, seeded(1))

		next, err := Advance(root, state.Clone())

		require.NoError(t, err)
		require.Equal(t, root, next)
	})

	t.Run("moves to the observed child", func(t *testing.T) {
		state := newMockState(3, 3)
		m := newTestMCTS(t, WithIterations(100))
		root := m.NewRoot(state)
		_, _, err := m.Search(context.Background(), root, state)
		require.NoError(t, err)

		observed := root.Children()[0]
		next, err := Advance(root, observed.State())

		require.NoError(t, err)
		require.True(t, next.IsRoot())
		require.Equal(t, observed.Visits(), next.Visits(), "Statistics should survive the move")
		require.True(t, game.Equal(observed.State(), next.State()))
	})

	t.Run("unknown state is an error", func(t *testing.T) {
		root := NewRoot(newMockState(2, 2), WinRate{}, seeded(1))

		_, err := Advance(root, mockState{acted: rival, path: "q"})

		require.ErrorIs(t, err, ErrNoMatchingChild)
	})
}
