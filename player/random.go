package player

import (
	"errors"

	"tictactoe/game"

	"golang.org/x/exp/rand"
)

var ErrNoMoves = errors.New("no legal moves")

// Random plays a uniformly random legal move.
type Random struct {
	mark game.Mark
	rng  *rand.Rand
}

func NewRandom(mark game.Mark, seed uint64) *Random {
	return &Random{mark: mark, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Mark() game.Mark {
	return r.mark
}

func (r *Random) FindMove(state game.State) (game.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return 0, ErrNoMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}
