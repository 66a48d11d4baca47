package searcher

import (
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS decides moves by building a fresh search tree for every decision.
type MCTS struct {
	episodes int
	rng      *rand.Rand
	metrics  metrics.Collector
}

// WithEpisodes sets the number of iterations per move. Zero is allowed and
// degrades to a random legal move.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes >= 0 {
			m.episodes = episodes
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		episodes: meta.EPISODES,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *MCTS) Episodes() int {
	return m.episodes
}

// FindMove searches state on behalf of mark and returns the chosen move.
func (m *MCTS) FindMove(state game.State, mark game.Mark) (game.Move, metrics.SearchMetric) {
	tree := newTree(state, mark, m.rng, m.metrics)

	m.metrics.Start(m.episodes)
	tree.Simulate(m.episodes)
	metric := m.metrics.Complete()

	move := tree.BestMove()
	log.Debug().
		Str("mark", mark.String()).
		Int("episodes", m.episodes).
		Int("children", len(tree.root.children)).
		Int("move", int(move)).
		Msg("search complete")
	return move, metric
}

// Tree holds the statistics of a single move decision.
type Tree struct {
	root    *node
	rng     *rand.Rand
	metrics metrics.Collector
}

// Stats is a view of one root child.
type Stats struct {
	Move   game.Move
	Visits int
	Wins   float64
}

// NewTree roots a search at a copy of state with mark to move.
func NewTree(state game.State, mark game.Mark, rng *rand.Rand) *Tree {
	return newTree(state, mark, rng, metrics.NewDummyCollector())
}

func newTree(state game.State, mark game.Mark, rng *rand.Rand, collector metrics.Collector) *Tree {
	if rng == nil {
		panic("tree needs a random source")
	}
	return &Tree{
		root:    newRoot(state, mark),
		rng:     rng,
		metrics: collector,
	}
}

// Simulate runs n select, expand, rollout and backup iterations in sequence.
func (t *Tree) Simulate(n int) {
	for i := 0; i < n; i++ {
		leaf := t.selectThenExpand()
		winner := t.rollout(leaf)
		backup(leaf, winner)
		t.metrics.AddEpisode()
	}
}

// selectThenExpand descends by UCB1 until it expands a new leaf or reaches a
// node with nothing left to expand. Children are only ever selected once all
// of their siblings have been expanded and visited.
func (t *Tree) selectThenExpand() *node {
	n := t.root
	for {
		if child := n.expand(t.rng); child != nil {
			t.metrics.AddExpansion()
			return child
		}
		if len(n.children) == 0 { // Terminal node
			return n
		}
		n = n.selectChild()
	}
}

// rollout plays random moves on a copy of the leaf's state until the game is
// decided and returns the winner, None for a draw.
func (t *Tree) rollout(leaf *node) game.Mark {
	state := leaf.state.Clone()
	mark := leaf.toMove
	depth := 0
	for state.Winner() == game.None && state.HasEmptyCells() {
		moves := state.AvailableMoves()
		state.Apply(moves[t.rng.Intn(len(moves))], mark) // Random rollout policy
		mark = mark.Opponent()
		depth++
	}
	t.metrics.AddPlayout(depth)
	return state.Winner()
}

func backup(leaf *node, winner game.Mark) {
	for n := leaf; n != nil; n = n.parent {
		n.update(winner)
	}
}

// BestMove returns the move of the root child with the highest win rate,
// first one wins ties. Without any expanded child it falls back to a random
// legal move.
func (t *Tree) BestMove() game.Move {
	if len(t.root.children) == 0 {
		moves := t.root.state.AvailableMoves()
		if len(moves) == 0 {
			panic("cannot pick a move: no legal moves")
		}
		return moves[t.rng.Intn(len(moves))]
	}

	best := t.root.children[0]
	for _, child := range t.root.children[1:] {
		if child.winRate() > best.winRate() {
			best = child
		}
	}
	return best.move
}

// Visits is the number of completed iterations through the root.
func (t *Tree) Visits() int {
	return t.root.visits
}

// Children returns root child statistics in expansion order.
func (t *Tree) Children() []Stats {
	stats := make([]Stats, len(t.root.children))
	for i, child := range t.root.children {
		stats[i] = Stats{Move: child.move, Visits: child.visits, Wins: child.wins}
	}
	return stats
}
