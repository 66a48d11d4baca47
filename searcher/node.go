package searcher

import (
	"math"

	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// node is a position reached by playing move from its parent. Children are
// owned by their parent; the parent pointer is only walked during backup.
type node struct {
	move     game.Move
	mover    game.Mark // Mark that played move, None at the root
	toMove   game.Mark
	parent   *node
	children []*node
	untried  []game.Move
	state    game.State
	wins     float64
	visits   int
}

func newRoot(state game.State, toMove game.Mark) *node {
	root := newNode(nil, 0, game.None, state.Clone())
	root.toMove = toMove
	return root
}

// newNode takes ownership of state.
func newNode(parent *node, move game.Move, mover game.Mark, state game.State) *node {
	var untried []game.Move
	if state.Winner() == game.None { // Decided positions are terminal
		untried = state.AvailableMoves()
	}
	return &node{
		move:    move,
		mover:   mover,
		toMove:  mover.Opponent(),
		parent:  parent,
		untried: untried,
		state:   state,
	}
}

// expand plays a random untried move into a new child, or returns nil if the
// node is fully expanded.
func (n *node) expand(rng *rand.Rand) *node {
	if len(n.untried) == 0 {
		return nil
	}

	i := rng.Intn(len(n.untried))
	move := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	state := n.state.Clone()
	if !state.Apply(move, n.toMove) {
		panic("untried move was rejected by the state")
	}
	child := newNode(n, move, n.toMove, state)
	n.children = append(n.children, child)
	return child
}

// selectChild returns the child with the highest UCB1 score, first one wins
// ties. Every child must have been visited.
func (n *node) selectChild() *node {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(CSquared, float64(n.visits))
	var best *node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		if score := policy.evaluate(child.wins, float64(child.visits)); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// update records one playout through the node. The root only counts visits.
func (n *node) update(winner game.Mark) {
	n.visits++
	if n.parent == nil {
		return
	}
	if winner != game.None && winner == n.mover {
		n.wins += Win
	} else {
		n.wins += Loss
	}
}

func (n *node) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}
