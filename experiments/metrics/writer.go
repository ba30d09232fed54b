package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one agent of an experiment.
type AgentConfig struct {
	ID          int      `yaml:"id"`
	Behaviour   string   `yaml:"behaviour"`   // random, mcts or uct
	Iterations  int      `yaml:"iterations"`  // 0 means the default budget
	Exploration *float64 `yaml:"exploration"` // nil means the default constant
	RetainTree  bool     `yaml:"retain_tree"`
	Temperature float64  `yaml:"temperature"`
}

type GameRecord struct {
	ID          int
	Agent1      int // AgentConfig.ID, moves first
	Agent2      int // AgentConfig.ID
	WinnerAgent int // 0 on a draw
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	MoveMetric
}

// Summary aggregates the games of one matchup from the first agent's point of view.
type Summary struct {
	Agent1      int
	Agent2      int
	Games       int
	Wins1       int
	Wins2       int
	Draws       int
	Score1      float64 // Mean score of agent 1, a draw counting half
	Score1Err   float64 // Standard error of Score1
	MeanMoves   float64
	StdMoves    float64
	MeanSearch1 time.Duration
	MeanSearch2 time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for an experiment under root.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102-150405")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "behaviour", "iterations", "exploration", "retain_tree", "temperature"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Behaviour,
			strconv.Itoa(config.Iterations),
			formatOptional(config.Exploration),
			strconv.FormatBool(config.RetainTree),
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

// formatOptional writes an unset value as an empty field.
func formatOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "first_actor", "winner", "winner_agent", "stalled", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.FirstActor,
			record.Winner,
			strconv.Itoa(record.WinnerAgent),
			strconv.FormatBool(record.Stalled),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "agent", "actor", "action", "policy", "duration", "iterations", "full_playouts", "is_tree_reused", "tree_size", "root_visits"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Agent),
			record.Actor,
			record.Action,
			record.Policy,
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.FullPlayouts),
			strconv.FormatBool(record.TreeReused),
			strconv.Itoa(record.TreeSize),
			strconv.FormatUint(record.RootVisits, 10),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{"agent1", "agent2", "games", "wins1", "wins2", "draws", "score1", "score1_err", "mean_moves", "std_moves", "mean_search1", "mean_search2"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Agent1),
			strconv.Itoa(s.Agent2),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins1),
			strconv.Itoa(s.Wins2),
			strconv.Itoa(s.Draws),
			strconv.FormatFloat(s.Score1, 'f', 4, 64),
			strconv.FormatFloat(s.Score1Err, 'f', 4, 64),
			strconv.FormatFloat(s.MeanMoves, 'f', 2, 64),
			strconv.FormatFloat(s.StdMoves, 'f', 2, 64),
			s.MeanSearch1.String(),
			s.MeanSearch2.String(),
		})
	}
	return w.write("summaries.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
