package metrics

import (
	"time"

	"tictactoe/game"
)

type SearchMetric struct {
	Budget       int
	Episodes     int
	Duration     time.Duration
	Expansions   int
	FullPlayouts int
	PlayoutMoves int
}

// MeanPlayoutDepth is the average number of random moves played per rollout.
func (s SearchMetric) MeanPlayoutDepth() float64 {
	if s.FullPlayouts == 0 {
		return 0
	}
	return float64(s.PlayoutMoves) / float64(s.FullPlayouts)
}

type MoveMetric struct {
	Step   int
	Player game.Mark
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Mark
	Winner         game.Mark
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(episodes int)
	AddEpisode()
	AddExpansion()
	AddPlayout(depth int)
	Complete() SearchMetric
}

// collector is not safe for concurrent use; searches run sequentially.
type collector struct {
	budget       int
	startTime    time.Time
	episodes     int
	expansions   int
	fullPlayouts int
	playoutMoves int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(episodes int) {
	*m = collector{budget: episodes, startTime: time.Now()}
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddExpansion() {
	m.expansions++
}

func (m *collector) AddPlayout(depth int) {
	m.fullPlayouts++
	m.playoutMoves += depth
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:       m.budget,
		Episodes:     m.episodes,
		Duration:     time.Since(m.startTime),
		Expansions:   m.expansions,
		FullPlayouts: m.fullPlayouts,
		PlayoutMoves: m.playoutMoves,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(episodes int)     {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) AddPlayout(depth int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
