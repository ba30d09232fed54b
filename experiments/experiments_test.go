package experiments

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"aitrees/experiments/metrics"
	"aitrees/game"
	"aitrees/game/ox"
	"aitrees/searcher"

	"github.com/stretchr/testify/require"
)

func TestNewAgent(t *testing.T) {
	state := ox.New(game.NewActor("X"), game.NewActor("O"))

	for _, behaviour := range []string{Random, MCTS, UCT} {
		t.Run(behaviour, func(t *testing.T) {
			a, err := NewAgent(metrics.AgentConfig{ID: 1, Behaviour: behaviour, Iterations: 20, RetainTree: true}, 3)
			require.NoError(t, err)

			action, metric, err := a.FindAction(context.Background(), state)

			require.NoError(t, err)
			require.NotNil(t, action)
			if behaviour == Random {
				require.Equal(t, "random", metric.Policy)
			} else {
				require.Equal(t, 20, metric.Iterations, "Tree agents should report their search")
			}
		})
	}

	t.Run("mcts uses the win rate policy", func(t *testing.T) {
		a, err := NewAgent(metrics.AgentConfig{ID: 1, Behaviour: MCTS, Iterations: 5}, 3)
		require.NoError(t, err)
		_, metric, err := a.FindAction(context.Background(), state)
		require.NoError(t, err)
		require.Equal(t, "win rate", metric.Policy)
	})

	t.Run("verbose search reaches the trace sink", func(t *testing.T) {
		lines := []string{}
		a, err := NewAgent(metrics.AgentConfig{ID: 1, Behaviour: UCT, Iterations: 10}, 3,
			searcher.WithVerbose(true),
			searcher.WithTraceSink(func(line string) { lines = append(lines, line) }),
		)
		require.NoError(t, err)

		_, _, err = a.FindAction(context.Background(), state)

		require.NoError(t, err)
		require.NotEmpty(t, lines, "Tree dump should be written to the sink")
		require.Contains(t, lines[0], "[M: root")
	})

	t.Run("unknown behaviour", func(t *testing.T) {
		_, err := NewAgent(metrics.AgentConfig{ID: 1, Behaviour: "greedy"}, 3)
		require.ErrorIs(t, err, ErrInvalidExperiment)
	})
}

func TestSearchOptions(t *testing.T) {
	policyOf := func(t *testing.T, config metrics.AgentConfig) searcher.Policy {
		t.Helper()
		options, err := searchOptions(config, 1)
		require.NoError(t, err)
		m, err := searcher.NewMCTS(options...)
		require.NoError(t, err)
		return m.Policy()
	}

	t.Run("unset exploration keeps the default", func(t *testing.T) {
		require.Equal(t, searcher.UCT{C: searcher.DefaultExploration}, policyOf(t, metrics.AgentConfig{Behaviour: UCT}))
	})

	t.Run("zero exploration is passed through", func(t *testing.T) {
		zero := 0.0
		require.Equal(t, searcher.UCT{C: 0}, policyOf(t, metrics.AgentConfig{Behaviour: UCT, Exploration: &zero}))
	})

	t.Run("mcts ignores exploration", func(t *testing.T) {
		c := 3.0
		require.Equal(t, searcher.WinRate{}, policyOf(t, metrics.AgentConfig{Behaviour: MCTS, Exploration: &c}))
	})

	t.Run("iterations", func(t *testing.T) {
		options, err := searchOptions(metrics.AgentConfig{Behaviour: UCT, Iterations: 42}, 1)
		require.NoError(t, err)
		m, err := searcher.NewMCTS(options...)
		require.NoError(t, err)
		require.Equal(t, 42, m.Iterations())
	})
}

func TestSummarise(t *testing.T) {
	games := []metrics.GameRecord{
		{Agent1: 1, Agent2: 2, WinnerAgent: 1, GameMetric: metrics.GameMetric{TotalMoves: 5}},
		{Agent1: 2, Agent2: 1, WinnerAgent: 1, GameMetric: metrics.GameMetric{TotalMoves: 7}},
		{Agent1: 1, Agent2: 2, WinnerAgent: 0, GameMetric: metrics.GameMetric{TotalMoves: 9}},
		{Agent1: 2, Agent2: 1, WinnerAgent: 2, GameMetric: metrics.GameMetric{TotalMoves: 7}},
	}
	moves := []metrics.MoveRecord{
		{Agent: 1, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Duration: 2 * time.Millisecond}}},
		{Agent: 1, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Duration: 4 * time.Millisecond}}},
		{Agent: 2, MoveMetric: metrics.MoveMetric{SearchMetric: metrics.SearchMetric{Duration: time.Millisecond}}},
	}

	summary := summarise(1, 2, games, moves)

	require.Equal(t, 4, summary.Games)
	require.Equal(t, 2, summary.Wins1)
	require.Equal(t, 1, summary.Wins2)
	require.Equal(t, 1, summary.Draws)
	require.InDelta(t, 0.625, summary.Score1, 1e-9, "Two wins and a draw out of four")
	require.Positive(t, summary.Score1Err)
	require.InDelta(t, 7, summary.MeanMoves, 1e-9)
	require.Equal(t, 3*time.Millisecond, summary.MeanSearch1)
	require.Equal(t, time.Millisecond, summary.MeanSearch2)

	t.Run("single game has no spread", func(t *testing.T) {
		summary := summarise(1, 2, games[:1], nil)
		require.Equal(t, 1.0, summary.Score1)
		require.Zero(t, summary.Score1Err)
		require.Zero(t, summary.StdMoves)
		require.Zero(t, summary.MeanSearch1)
	})

	t.Run("no games", func(t *testing.T) {
		require.Equal(t, metrics.Summary{Agent1: 1, Agent2: 2}, summarise(1, 2, nil, nil))
	})
}

func TestRun(t *testing.T) {
	cfg := Config{
		Name:     "smoke",
		Game:     "ox",
		Games:    2,
		Seed:     5,
		MaxMoves: 20,
		Output:   t.TempDir(),
		Agents: []metrics.AgentConfig{
			{ID: 1, Behaviour: UCT, Iterations: 50, RetainTree: true},
			{ID: 2, Behaviour: Random},
		},
		MatchUps: [][]int{{1, 2}},
	}

	t.Run("plays and records every game", func(t *testing.T) {
		summaries, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		summary := summaries[0]
		require.Equal(t, 1, summary.Agent1)
		require.Equal(t, 2, summary.Games)
		require.Equal(t, 2, summary.Wins1+summary.Wins2+summary.Draws)

		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "summaries.csv"} {
			files, err := filepath.Glob(filepath.Join(cfg.Output, cfg.Name, "*", name))
			require.NoError(t, err)
			require.Len(t, files, 1, "%s should be written once", name)
		}
	})

	t.Run("cancelled context stops the experiment", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, cfg)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := cfg
		bad.MatchUps = nil
		_, err := Run(context.Background(), bad)
		require.ErrorIs(t, err, ErrInvalidExperiment)
	})
}
