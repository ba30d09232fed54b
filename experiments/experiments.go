package experiments

import (
	"context"
	"fmt"
	"time"

	"aitrees/engine"
	"aitrees/experiments/metrics"
	"aitrees/game"
	"aitrees/searcher"
	"aitrees/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// NewAgent builds the agent described by config. Tree agents collect search metrics;
// extra options such as tracing are applied after the configured ones.
func NewAgent(config metrics.AgentConfig, seed uint64, extra ...searcher.Option) (agent.Agent, error) {
	if config.Behaviour == Random {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed))), nil
	}
	options, err := searchOptions(config, seed)
	if err != nil {
		return nil, err
	}

	m, err := searcher.NewMCTS(append(options, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	agentOptions := []agent.Option{
		agent.WithRetainTree(config.RetainTree),
		agent.WithSamplingSeed(seed + 1),
	}
	if config.Temperature > 0 {
		agentOptions = append(agentOptions, agent.WithTemperature(config.Temperature))
	}
	return agent.NewTreeAgent(m, agentOptions...), nil
}

func searchOptions(config metrics.AgentConfig, seed uint64) ([]searcher.Option, error) {
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Exploration != nil {
		options = append(options, searcher.WithExploration(*config.Exploration))
	}

	switch config.Behaviour {
	case MCTS:
		options = append(options, searcher.WithPolicy(searcher.WinRate{}))
	case UCT:
	default:
		return nil, fmt.Errorf("%w: unknown behaviour %q", ErrInvalidExperiment, config.Behaviour)
	}
	return options, nil
}

// Run plays every matchup of cfg, alternating which agent moves first, writes the records
// and returns one summary per matchup.
func Run(ctx context.Context, cfg Config) ([]metrics.Summary, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	g, err := LookupGame(cfg.Game)
	if err != nil {
		return nil, err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []metrics.Summary{}

	log.Info().Msgf("starting %s experiment on %s...", cfg.Name, g.Name)

	for mi, matchUp := range cfg.MatchUps {
		config1 := cfg.agent(matchUp[0])
		config2 := cfg.agent(matchUp[1])
		first := len(gameRecords)
		firstMove := len(moveRecords)

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(cfg.MatchUps), config1, config2)

		for i := 0; i < cfg.Games; i++ {
			count++
			// Alternate the starting agent
			starter, follower := config1, config2
			if i%2 == 1 {
				starter, follower = config2, config1
			}
			seed := cfg.Seed + uint64(count)*4

			gameRecord, moves, err := runGame(ctx, cfg, g, starter, follower, seed)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecord.ID = count
			gameRecords = append(gameRecords, gameRecord)
			for _, mr := range moves {
				mr.Game = count
				moveRecords = append(moveRecords, mr)
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(cfg.MatchUps), i+1, gameRecord.Winner)
		}

		summary := summarise(config1.ID, config2.ID, gameRecords[first:], moveRecords[firstMove:])
		summaries = append(summaries, summary)
		log.Info().Msgf("completed matchup %d of %d: agent %d scored %.3f ± %.3f", mi+1, len(cfg.MatchUps), summary.Agent1, summary.Score1, summary.Score1Err)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	err = store(cfg, gameRecords, moveRecords, summaries)
	if err != nil {
		return summaries, err
	}
	return summaries, nil
}

// runGame plays one game where starter moves first.
func runGame(ctx context.Context, cfg Config, g Game, starter, follower metrics.AgentConfig, seed uint64) (metrics.GameRecord, []metrics.MoveRecord, error) {
	agent1, err := NewAgent(starter, seed, searcher.WithVerbose(cfg.Verbose))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	agent2, err := NewAgent(follower, seed+2, searcher.WithVerbose(cfg.Verbose))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	agentIDs := map[string]int{g.First.Name(): starter.ID, g.Second.Name(): follower.ID}

	e, err := engine.NewLocal(g.New(g.First, g.Second), map[game.Actor]agent.Agent{
		g.First:  agent1,
		g.Second: agent2,
	}, engine.WithMaxMoves(cfg.MaxMoves))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record := metrics.GameRecord{
		Agent1:      starter.ID,
		Agent2:      follower.ID,
		WinnerAgent: agentIDs[winner],
		GameMetric:  gameMetric,
	}
	moves := make([]metrics.MoveRecord, 0, len(moveMetrics))
	for _, mm := range moveMetrics {
		moves = append(moves, metrics.MoveRecord{Agent: agentIDs[mm.Actor], MoveMetric: mm})
	}
	return record, moves, nil
}

// summarise scores a matchup for agent1: a win counts 1, a draw counts half.
func summarise(agent1, agent2 int, games []metrics.GameRecord, moves []metrics.MoveRecord) metrics.Summary {
	summary := metrics.Summary{Agent1: agent1, Agent2: agent2, Games: len(games)}
	if len(games) == 0 {
		return summary
	}

	scores := make([]float64, 0, len(games))
	lengths := make([]float64, 0, len(games))
	for _, record := range games {
		switch record.WinnerAgent {
		case agent1:
			summary.Wins1++
			scores = append(scores, 1)
		case agent2:
			summary.Wins2++
			scores = append(scores, 0)
		default:
			summary.Draws++
			scores = append(scores, 0.5)
		}
		lengths = append(lengths, float64(record.TotalMoves))
	}

	var std float64
	summary.Score1, std = stat.MeanStdDev(scores, nil)
	summary.MeanMoves, summary.StdMoves = stat.MeanStdDev(lengths, nil)
	if len(games) > 1 {
		summary.Score1Err = stat.StdErr(std, float64(len(games)))
	} else {
		summary.StdMoves = 0
	}

	summary.MeanSearch1 = meanSearch(agent1, moves)
	summary.MeanSearch2 = meanSearch(agent2, moves)
	return summary
}

func meanSearch(agentID int, moves []metrics.MoveRecord) time.Duration {
	durations := []float64{}
	for _, mr := range moves {
		if mr.Agent == agentID {
			durations = append(durations, float64(mr.Duration))
		}
	}
	if len(durations) == 0 {
		return 0
	}
	return time.Duration(stat.Mean(durations, nil))
}

func store(cfg Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord, summaries []metrics.Summary) error {
	writer, err := metrics.NewWriter(cfg.Output, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(cfg.Agents)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	err = writer.WriteSummaries(summaries)
	if err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored summaries in %s", writer.Dir())
	return nil
}
