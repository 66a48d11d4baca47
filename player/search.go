package player

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

// Search plays the move a fresh MCTS search rates best.
type Search struct {
	mark   game.Mark
	mcts   *searcher.MCTS
	metric metrics.SearchMetric
}

func NewSearch(mark game.Mark, mcts *searcher.MCTS) *Search {
	return &Search{mark: mark, mcts: mcts}
}

func (s *Search) Mark() game.Mark {
	return s.mark
}

func (s *Search) FindMove(state game.State) (game.Move, error) {
	move, metric := s.mcts.FindMove(state, s.mark)
	s.metric = metric
	log.Debug().Str("player", s.mark.String()).Int("move", int(move)).Msg("search player moved")
	return move, nil
}

func (s *Search) LastMetric() metrics.SearchMetric {
	return s.metric
}
