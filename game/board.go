package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Size    = 3
	Squares = Size * Size
)

var (
	ErrMalformedMove  = errors.New("malformed move")
	ErrOutOfRange     = errors.New("move out of range")
	ErrMalformedBoard = errors.New("malformed board")
)

var lines = [8][3]Move{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Lines returns the winning lines of the board.
func Lines() [][3]Move {
	out := make([][3]Move, len(lines))
	copy(out, lines[:])
	return out
}

// Board is a 3x3 tic-tac-toe position.
type Board struct {
	cells  [Squares]Mark
	winner Mark
}

func NewBoard() *Board {
	return &Board{}
}

// ParseBoard reads 9 cells of 'X', 'O', ' ' or '.', row-major.
func ParseBoard(s string) (*Board, error) {
	if len(s) != Squares {
		return nil, fmt.Errorf("%w: want %d cells, got %d", ErrMalformedBoard, Squares, len(s))
	}
	b := NewBoard()
	for i, c := range s {
		switch c {
		case 'X', 'x':
			b.cells[i] = X
		case 'O', 'o':
			b.cells[i] = O
		case ' ', '.':
		default:
			return nil, fmt.Errorf("%w: unexpected cell %q at %d", ErrMalformedBoard, c, i)
		}
	}
	for _, line := range lines {
		if m := b.lineOwner(line); m != None {
			b.winner = m
			break
		}
	}
	return b, nil
}

// ParseMove parses a square token typed by a user.
func ParseMove(token string) (Move, error) {
	token = strings.TrimSpace(token)
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMove, token)
	}
	if n < 0 || n >= Squares {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return Move(n), nil
}

func (b *Board) At(square Move) Mark {
	return b.cells[square]
}

func (b *Board) AvailableMoves() []Move {
	moves := make([]Move, 0, Squares)
	for i, c := range b.cells {
		if c == None {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (b *Board) HasEmptyCells() bool {
	for _, c := range b.cells {
		if c == None {
			return true
		}
	}
	return false
}

// Apply places mark on square, returning false if the move is illegal.
func (b *Board) Apply(square Move, mark Mark) bool {
	if square < 0 || square >= Squares || mark == None || b.cells[square] != None {
		return false
	}
	b.cells[square] = mark
	if b.wins(square, mark) {
		b.winner = mark
	}
	return true
}

// wins checks only the lines through square.
func (b *Board) wins(square Move, mark Mark) bool {
	row := int(square) / Size
	if b.cells[row*Size] == mark && b.cells[row*Size+1] == mark && b.cells[row*Size+2] == mark {
		return true
	}
	col := int(square) % Size
	if b.cells[col] == mark && b.cells[col+Size] == mark && b.cells[col+2*Size] == mark {
		return true
	}
	// Only even squares sit on a diagonal
	if square%2 == 0 {
		if b.cells[0] == mark && b.cells[4] == mark && b.cells[8] == mark {
			return true
		}
		if b.cells[2] == mark && b.cells[4] == mark && b.cells[6] == mark {
			return true
		}
	}
	return false
}

func (b *Board) lineOwner(line [3]Move) Mark {
	m := b.cells[line[0]]
	if m != None && b.cells[line[1]] == m && b.cells[line[2]] == m {
		return m
	}
	return None
}

func (b *Board) Clone() State {
	c := *b
	return &c
}

func (b *Board) Winner() Mark {
	return b.winner
}

// ToMove derives the mark to play from move parity, X moving first.
func (b *Board) ToMove() Mark {
	var nx, no int
	for _, c := range b.cells {
		switch c {
		case X:
			nx++
		case O:
			no++
		}
	}
	if nx > no {
		return O
	}
	return X
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		cells := make([]string, Size)
		for col := 0; col < Size; col++ {
			cells[col] = b.cells[row*Size+col].String()
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return sb.String()
}
