package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWinRate(t *testing.T) {
	t.Run("wins over visits", func(t *testing.T) {
		require.InDelta(t, 0.25, WinRate{}.Score(10, 1, 4), 1e-9)
	})

	t.Run("unvisited child scores zero", func(t *testing.T) {
		require.Zero(t, WinRate{}.Score(10, 0, 0), "Should not divide by zero")
	})
}

func TestUCTScore(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := UCT{C: math.Sqrt2}
		got := policy.Score(100, 5, 10)

		expected := 5.0/10 + math.Sqrt2*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + c*sqrt(ln(N)/n)")
	})

	t.Run("unvisited child scores zero", func(t *testing.T) {
		require.Zero(t, UCT{C: math.Sqrt2}.Score(100, 0, 0))
	})

	t.Run("unvisited parent only scores the win rate", func(t *testing.T) {
		require.InDelta(t, 0.5, UCT{C: math.Sqrt2}.Score(0, 1, 2), 1e-9)
	})

	t.Run("zero exploration equals win rate", func(t *testing.T) {
		policy := UCT{C: 0}
		for parent := uint64(0); parent < 20; parent++ {
			for visits := uint64(0); visits <= parent; visits++ {
				for wins := uint64(0); wins <= visits; wins++ {
					require.Equal(t, WinRate{}.Score(parent, wins, visits), policy.Score(parent, wins, visits),
						"UCT with c=0 should match win rate for N=%d w=%d n=%d", parent, wins, visits)
				}
			}
		}
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy := UCT{C: math.Sqrt2}

		require.Greater(t, policy.Score(1000, 5, 10), policy.Score(100, 5, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := UCT{C: math.Sqrt2}

		require.Greater(t, policy.Score(100, 5, 10), policy.Score(100, 10, 20),
			"More child visits at the same win rate should decrease exploration term")
	})

	t.Run("exploitation term increases with wins", func(t *testing.T) {
		policy := UCT{C: math.Sqrt2}

		require.Greater(t, policy.Score(100, 10, 10), policy.Score(100, 5, 10),
			"More wins should increase exploitation term")
	})
}
