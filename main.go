package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"aitrees/engine"
	"aitrees/experiments"
	"aitrees/experiments/metrics"
	"aitrees/game"
	"aitrees/meta"
	"aitrees/searcher"
	"aitrees/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	game        string
	first       string
	second      string
	iterations  int
	exploration float64
	retain      bool
	temperature float64
	seed        uint64
	verbose     bool
	logLevel    string
	config      string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.game, "game", meta.DEFAULT_GAME, fmt.Sprintf("Game to play, one of %v", experiments.GameNames()))
	flag.StringVar(&opts.first, "x", experiments.UCT, "Behaviour of the first player: random, mcts or uct")
	flag.StringVar(&opts.second, "o", experiments.Random, "Behaviour of the second player: random, mcts or uct")
	flag.IntVar(&opts.iterations, "iterations", searcher.DefaultIterations, "Search iterations per move")
	flag.Float64Var(&opts.exploration, "exploration", searcher.DefaultExploration, "UCT exploration constant")
	flag.BoolVar(&opts.retain, "retain", false, "Keep the search tree between moves")
	flag.Float64Var(&opts.temperature, "temperature", 0, "Sample moves by visit count at this temperature, 0 plays the most visited")
	flag.Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
	flag.BoolVar(&opts.verbose, "verbose", false, "Print the search tree after every move")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.StringVar(&opts.config, "config", "", "YAML experiment to run instead of a single game")
	flag.Parse()

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", opts.logLevel, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.config != "" {
		err = runExperiment(ctx, opts.config)
	} else {
		err = playGame(ctx, opts)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("aborted")
	}
}

func runExperiment(ctx context.Context, path string) error {
	cfg, err := experiments.LoadConfig(path)
	if err != nil {
		return err
	}
	summaries, err := experiments.Run(ctx, cfg)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("agent %d vs agent %d: %d-%d-%d, score %.3f ± %.3f over %d games, %.1f moves on average\n",
			s.Agent1, s.Agent2, s.Wins1, s.Draws, s.Wins2, s.Score1, s.Score1Err, s.Games, s.MeanMoves)
	}
	return nil
}

func playGame(ctx context.Context, opts options) error {
	g, err := experiments.LookupGame(opts.game)
	if err != nil {
		return err
	}
	newAgent := func(id int, behaviour string, seed uint64) (agent.Agent, error) {
		return experiments.NewAgent(metrics.AgentConfig{
			ID:          id,
			Behaviour:   behaviour,
			Iterations:  opts.iterations,
			Exploration: &opts.exploration,
			RetainTree:  opts.retain,
			Temperature: opts.temperature,
		}, seed,
			searcher.WithVerbose(opts.verbose),
			searcher.WithTraceSink(func(line string) { fmt.Println(line) }),
		)
	}
	first, err := newAgent(1, opts.first, opts.seed)
	if err != nil {
		return err
	}
	second, err := newAgent(2, opts.second, opts.seed+2)
	if err != nil {
		return err
	}

	out := termenv.NewOutput(os.Stdout)
	r := newRenderer(out, g.First, g.Second)
	initial := g.New(g.First, g.Second)
	fmt.Println(r.render(initial))

	e, err := engine.NewLocal(initial, map[game.Actor]agent.Agent{g.First: first, g.Second: second},
		engine.WithMaxMoves(meta.MAX_MOVES),
		engine.WithOnMove(func(step int, action game.Action, state game.State) {
			fmt.Printf("%d. %s\n%s\n", step, action, r.render(state))
		}),
	)
	if err != nil {
		return err
	}

	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	switch {
	case gameMetric.Stalled:
		fmt.Println(out.String("stalled").Faint())
	case winner == "":
		fmt.Println(out.String("draw").Bold())
	default:
		fmt.Println(out.String(winner + " wins").Bold())
	}
	log.Info().Msgf("game over after %d moves in %s", gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}
