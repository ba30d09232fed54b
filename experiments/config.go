package experiments

import (
	"errors"
	"fmt"
	"os"

	"aitrees/experiments/metrics"
	"aitrees/meta"

	"gopkg.in/yaml.v3"
)

var ErrInvalidExperiment = errors.New("invalid experiment")

const (
	Random = "random"
	MCTS   = "mcts"
	UCT    = "uct"
)

// Config describes an experiment: the agents taking part and which of them meet.
type Config struct {
	Name     string                `yaml:"name"`
	Game     string                `yaml:"game"`
	Games    int                   `yaml:"games"` // Per matchup
	Seed     uint64                `yaml:"seed"`
	MaxMoves int                   `yaml:"max_moves"`
	Output   string                `yaml:"output"`
	Verbose  bool                  `yaml:"verbose"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	MatchUps [][]int               `yaml:"matchups"` // Pairs of agent IDs
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML experiment, fills in defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := Config{}
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidExperiment, err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Game == "" {
		c.Game = meta.DEFAULT_GAME
	}
	if c.Games == 0 {
		c.Games = meta.GAMES_PER_MATCHUP
	}
	if c.MaxMoves == 0 {
		c.MaxMoves = meta.MAX_MOVES
	}
	if c.Output == "" {
		c.Output = meta.OUTPUT_DIR
	}
}

func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidExperiment)
	}
	if _, err := LookupGame(c.Game); err != nil {
		return err
	}
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidExperiment, c.Games)
	}
	if c.MaxMoves < 0 {
		return fmt.Errorf("%w: max moves must not be negative, got %d", ErrInvalidExperiment, c.MaxMoves)
	}
	ids := map[int]bool{}
	for _, agent := range c.Agents {
		if agent.ID <= 0 {
			return fmt.Errorf("%w: agent ids must be positive, got %d", ErrInvalidExperiment, agent.ID)
		}
		if ids[agent.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidExperiment, agent.ID)
		}
		ids[agent.ID] = true
		switch agent.Behaviour {
		case Random, MCTS, UCT:
		default:
			return fmt.Errorf("%w: agent %d has unknown behaviour %q", ErrInvalidExperiment, agent.ID, agent.Behaviour)
		}
		if agent.Iterations < 0 || agent.Temperature < 0 || (agent.Exploration != nil && *agent.Exploration < 0) {
			return fmt.Errorf("%w: agent %d has a negative setting", ErrInvalidExperiment, agent.ID)
		}
	}
	if len(c.MatchUps) == 0 {
		return fmt.Errorf("%w: at least one matchup is required", ErrInvalidExperiment)
	}
	for i, matchUp := range c.MatchUps {
		if len(matchUp) != 2 {
			return fmt.Errorf("%w: matchup %d needs two agents, got %d", ErrInvalidExperiment, i+1, len(matchUp))
		}
		for _, id := range matchUp {
			if !ids[id] {
				return fmt.Errorf("%w: matchup %d names unknown agent %d", ErrInvalidExperiment, i+1, id)
			}
		}
	}
	return nil
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent
		}
	}
	return metrics.AgentConfig{}
}
