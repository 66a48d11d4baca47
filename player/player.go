package player

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Player decides a move for its mark. Implementations may block.
type Player interface {
	Mark() game.Mark
	FindMove(state game.State) (game.Move, error)
}

// Measured is implemented by players that report metrics about their last decision.
type Measured interface {
	LastMetric() metrics.SearchMetric
}
