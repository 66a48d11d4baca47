package game

// Mark is the token a player places on the board.
type Mark byte

const (
	None Mark = iota
	X
	O
)

func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return None
	}
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Move identifies a square, row-major from 0.
type Move int

// State is the contract a game must satisfy to be searched.
// Apply mutates the state in place, Clone must return an independent copy.
type State interface {
	AvailableMoves() []Move
	Apply(move Move, mark Mark) bool
	HasEmptyCells() bool
	Clone() State
	Winner() Mark
}
