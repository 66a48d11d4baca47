package engine

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Result of a finished game. Winner is None for a draw.
type Result struct {
	Winner      game.Mark
	Moves       []game.Move
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}

type Engine interface {
	// Run plays a game till there's a winner or the board is full
	Run() (Result, error)
}
