package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Policy       string
	Budget       int // Configured iterations
	Duration     time.Duration
	Iterations   int
	FullPlayouts int // Playouts that reached a terminal state rather than stalling
	TreeReused   bool
	TreeSize     int
	RootVisits   uint64
}

type MoveMetric struct {
	Step   int
	Actor  string
	Action string
	SearchMetric
}

type GameMetric struct {
	FirstActor string
	Winner     string // Empty on a draw
	Stalled    bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(budget int, policy string)
	SetTreeReused(value bool)
	AddIteration()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	budget       int
	policy       string
	startTime    time.Time
	iterations   atomic.Int32
	fullPlayouts atomic.Int32
	treeReused   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget int, policy string) {
	m.startTime = time.Now()
	m.budget = budget
	m.policy = policy
	m.iterations.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) SetTreeReused(value bool) {
	m.treeReused.Store(value)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Policy:       m.policy,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Iterations:   int(m.iterations.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeReused:   m.treeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget int, policy string) {}
func (m *dummyCollector) SetTreeReused(value bool)        {}
func (m *dummyCollector) AddIteration()                   {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{} }
