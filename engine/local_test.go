package engine

import (
	"bytes"
	"testing"

	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"

	"github.com/stretchr/testify/require"
)

type scripted struct {
	mark  game.Mark
	moves []game.Move
}

func (s *scripted) Mark() game.Mark {
	return s.mark
}

func (s *scripted) FindMove(state game.State) (game.Move, error) {
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, nil
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("first line completed wins the game", func(t *testing.T) {
		var out bytes.Buffer
		x := &scripted{mark: game.X, moves: []game.Move{0, 1, 2}}
		o := &scripted{mark: game.O, moves: []game.Move{3, 4}}
		e := LocalEngine(game.NewBoard(), x, o, WithOutput(&out))

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.X, result.Winner)
		require.Equal(t, []game.Move{0, 3, 1, 4, 2}, result.Moves, "Players should alternate starting with X")
		require.Equal(t, 5, result.GameMetric.TotalMoves)
		require.Equal(t, game.X, result.GameMetric.StartingPlayer)
		require.Contains(t, out.String(), "X makes a move to square 2")
		require.Contains(t, out.String(), "X wins!")
	})

	t.Run("full board without a line is a tie", func(t *testing.T) {
		var out bytes.Buffer
		x := &scripted{mark: game.X, moves: []game.Move{0, 2, 3, 7, 8}}
		o := &scripted{mark: game.O, moves: []game.Move{1, 4, 5, 6}}
		e := LocalEngine(game.NewBoard(), x, o, WithOutput(&out))

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.None, result.Winner)
		require.Len(t, result.Moves, game.Squares)
		require.Contains(t, out.String(), "It's a tie!")
	})

	t.Run("illegal move stops the game", func(t *testing.T) {
		x := &scripted{mark: game.X, moves: []game.Move{0}}
		o := &scripted{mark: game.O, moves: []game.Move{0}}

		_, err := LocalEngine(game.NewBoard(), x, o).Run()

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("resuming from a position uses the mark to move", func(t *testing.T) {
		board, err := game.ParseBoard("X        ")
		require.NoError(t, err)
		x := &scripted{mark: game.X, moves: []game.Move{1, 2}}
		o := &scripted{mark: game.O, moves: []game.Move{4, 5}}

		result, err := LocalEngine(board, x, o).Run()

		require.NoError(t, err)
		require.Equal(t, game.O, result.GameMetric.StartingPlayer)
		require.Equal(t, []game.Move{4, 1, 5, 2}, result.Moves[:4])
	})

	t.Run("panics on mismatched marks", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(game.NewBoard(), &scripted{mark: game.O}, &scripted{mark: game.O})
		})
	})
}

func TestSearchSelfPlay(t *testing.T) {
	for seed := uint64(0); seed < 3; seed++ {
		x := player.NewSearch(game.X, searcher.NewMCTS(searcher.WithEpisodes(500), searcher.WithSeed(seed), searcher.WithMetrics()))
		o := player.NewSearch(game.O, searcher.NewMCTS(searcher.WithEpisodes(500), searcher.WithSeed(seed+100)))
		board := game.NewBoard()

		result, err := LocalEngine(board, x, o).Run()

		require.NoError(t, err)
		require.LessOrEqual(t, len(result.Moves), game.Squares, "Game should end within 9 moves")
		require.Contains(t, []game.Move{0, 1, 2, 3, 4, 5, 6, 7, 8}, result.Moves[0])
		require.True(t, board.Winner() != game.None || !board.HasEmptyCells(), "Game should reach a terminal state")
		require.Equal(t, 500, result.MoveMetrics[0].Episodes, "X should report its search metrics")
	}
}
