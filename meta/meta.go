// meta/meta.go
package meta

// GAMES_PER_MATCHUP defines the number of games played for each matchup of an experiment.
const GAMES_PER_MATCHUP = 10

// MAX_MOVES caps the length of a single game.
const MAX_MOVES = 300

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "output"

// DEFAULT_GAME is played when no game is named.
const DEFAULT_GAME = "ox"
