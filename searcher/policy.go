package searcher

import "math"

// Default exploration constant for UCT
const DefaultExploration = math.Sqrt2

// Policy scores a child from its statistics and its parent's visit count.
type Policy interface {
	Score(parentVisits, wins, visits uint64) float64
}

// WinRate scores children by wins/visits, 0 when unvisited.
type WinRate struct{}

func (WinRate) Score(_, wins, visits uint64) float64 {
	if visits == 0 {
		return 0
	}
	return float64(wins) / float64(visits)
}

func (WinRate) String() string {
	return "win rate"
}

// UCT adds the exploration bonus C*sqrt(ln(N)/n) to the win rate. Unvisited children
// score 0, the same as WinRate.
type UCT struct {
	C float64
}

func (u UCT) Score(parentVisits, wins, visits uint64) float64 {
	if visits == 0 {
		return 0
	}
	q := WinRate{}.Score(parentVisits, wins, visits)
	if parentVisits == 0 || u.C == 0 {
		return q
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	return q + u.C*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

func (u UCT) String() string {
	return "uct"
}
