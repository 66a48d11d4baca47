package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"

	"github.com/rs/zerolog/log"
)

var ErrIllegalMove = errors.New("illegal move")

// Board is the state a local game is played on.
type Board interface {
	game.State
	ToMove() game.Mark
	String() string
}

type Option func(e *Local)

// WithOutput renders the board and moves to w after every turn.
func WithOutput(w io.Writer) Option {
	return func(e *Local) {
		e.out = w
	}
}

type Local struct {
	State   Board
	Players map[game.Mark]player.Player
	out     io.Writer
}

func LocalEngine(state Board, x, o player.Player, options ...Option) *Local {
	if x.Mark() != game.X || o.Mark() != game.O {
		panic("players must play X and O")
	}
	e := &Local{
		State:   state,
		Players: map[game.Mark]player.Player{game.X: x, game.O: o},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a winner is found or the board is full.
func (e *Local) Run() (Result, error) {
	mark := e.State.ToMove()
	result := Result{
		GameMetric: metrics.GameMetric{StartingPlayer: mark, StartTime: time.Now()},
	}

	log.Info().Msgf("player %s is starting", mark)
	e.render()

	for step := 1; e.State.Winner() == game.None && e.State.HasEmptyCells() && step <= meta.MAX_TURNS; step++ {
		p := e.Players[mark]
		move, err := p.FindMove(e.State)
		if err != nil {
			return result, fmt.Errorf("player %s failed to move: %w", mark, err)
		}
		if !e.State.Apply(move, mark) {
			return result, fmt.Errorf("%w: %s to square %d", ErrIllegalMove, mark, move)
		}

		moveMetric := metrics.MoveMetric{Step: step, Player: mark, Move: move}
		if m, ok := p.(player.Measured); ok {
			moveMetric.SearchMetric = m.LastMetric()
		}
		result.Moves = append(result.Moves, move)
		result.MoveMetrics = append(result.MoveMetrics, moveMetric)

		log.Debug().Int("step", step).Str("player", mark.String()).Int("move", int(move)).Msg("move played")
		e.printf("%s makes a move to square %d\n", mark, move)
		e.render()

		mark = mark.Opponent()
	}

	result.Winner = e.State.Winner()
	result.GameMetric.Winner = result.Winner
	result.GameMetric.EndTime = time.Now()
	result.GameMetric.Duration = result.GameMetric.EndTime.Sub(result.GameMetric.StartTime)
	result.GameMetric.TotalMoves = len(result.Moves)

	if result.Winner != game.None {
		log.Info().Msgf("game over after %d moves, winner: %s", len(result.Moves), result.Winner)
		e.printf("%s wins!\n", result.Winner)
	} else {
		log.Info().Msgf("game over after %d moves, tie", len(result.Moves))
		e.printf("It's a tie!\n")
	}
	return result, nil
}

func (e *Local) render() {
	e.printf("%s\n", e.State)
}

func (e *Local) printf(format string, args ...any) {
	if e.out != nil {
		fmt.Fprintf(e.out, format, args...)
	}
}
