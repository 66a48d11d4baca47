package player

import (
	"errors"
	"fmt"
	"io"

	"tictactoe/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrIllegalMove = errors.New("square is not available")

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

type prompter interface {
	SetPrompt(prompt string)
}

// Human asks for moves until a legal square is entered.
type Human struct {
	mark game.Mark
	in   LineReader
	out  io.Writer
}

func NewHuman(mark game.Mark, in LineReader, out io.Writer) *Human {
	return &Human{mark: mark, in: in, out: out}
}

func (h *Human) Mark() game.Mark {
	return h.mark
}

// FindMove only returns an error when the input source fails.
func (h *Human) FindMove(state game.State) (game.Move, error) {
	prompt := fmt.Sprintf("%s's turn. Input move (0-%d): ", h.mark, game.Squares-1)
	for {
		if p, ok := h.in.(prompter); ok {
			p.SetPrompt(prompt)
		} else {
			fmt.Fprint(h.out, prompt)
		}

		line, err := h.in.Readline()
		if err != nil {
			return 0, fmt.Errorf("failed to read move for %s: %w", h.mark, err)
		}

		move, err := parseLegal(line, state)
		if err != nil {
			log.Debug().Err(err).Str("input", line).Msg("rejected move")
			fmt.Fprintln(h.out, "Invalid square! Try again.")
			continue
		}
		return move, nil
	}
}

func parseLegal(line string, state game.State) (game.Move, error) {
	move, err := game.ParseMove(line)
	if err != nil {
		return 0, err
	}
	if !lo.Contains(state.AvailableMoves(), move) {
		return 0, fmt.Errorf("%w: %d", ErrIllegalMove, move)
	}
	return move, nil
}
