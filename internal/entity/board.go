package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const BoardSize = 3

// WinCombos - the eight lines of the board as row-major cell indexes.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other side. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is a 3x3 grid stored row-major. It is a value type: copying a Board
// copies every cell, so a move applied to a copy never reaches the original.
type Board [BoardSize * BoardSize]Mark

// NewBoard - returns the starting board with all cells empty.
func NewBoard() Board {
	return Board{}
}

func (that Board) At(move Move) Mark {
	return that[move.Index()]
}

// Counts returns the number of X and O marks on the board.
func (that Board) Counts() (int, int) {
	var countX, countO int

	for _, cell := range that {
		switch cell {
		case PlayerX:
			countX++
		case PlayerO:
			countO++
		case EmptyCell:
		}
	}

	return countX, countO
}

// CurrentPlayer - returns the side to move, derived from the mark counts only.
// X moves when the counts are equal.
func (that Board) CurrentPlayer() Mark {
	countX, countO := that.Counts()
	if countX > countO {
		return PlayerO
	}

	return PlayerX
}

// Winner scans all lines for X first and only then for O, so a board with a
// line for both sides reports X.
func (that Board) Winner() Mark {
	for _, mark := range [...]Mark{PlayerX, PlayerO} {
		if that.hasLine(mark) {
			return mark
		}
	}

	return EmptyCell
}

func (that Board) hasLine(mark Mark) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.IsFull()
}

// Utility - returns +1 when X has won, -1 when O has won and 0 for a draw.
func (that Board) Utility() (int, error) {
	if !that.IsTerminal() {
		return 0, apperror.ErrNotTerminal
	}

	switch that.Winner() {
	case PlayerX:
		return 1, nil
	case PlayerO:
		return -1, nil
	default:
		return 0, nil
	}
}

// Apply - returns the board that results from the current player taking the move.
func (that Board) Apply(move Move) (Board, error) {
	if !move.IsValid() {
		return that, fmt.Errorf("%w: %s is out of range", apperror.ErrInvalidMove, move)
	}

	if that.At(move) != EmptyCell {
		return that, fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidMove, move)
	}

	return that.Place(move, that.CurrentPlayer()), nil
}

// Place puts mark on the cell without any checks. The caller owns validity.
func (that Board) Place(move Move, mark Mark) Board {
	that[move.Index()] = mark
	return that
}

// String renders the board as three rows of X, O and '.' separated by '/'.
func (that Board) String() string {
	var sb strings.Builder

	for i, cell := range that {
		if i > 0 && i%BoardSize == 0 {
			sb.WriteByte('/')
		}

		switch cell {
		case PlayerX, PlayerO:
			sb.WriteString(string(cell))
		default:
			sb.WriteByte('.')
		}
	}

	return sb.String()
}

// ParseBoard reads the text form produced by String. Empty cells may also be
// written as '_', '-' or ' '; row separators '/' and newlines are ignored.
func ParseBoard(s string) (Board, error) {
	var board Board

	n := 0
	for _, r := range s {
		var mark Mark

		switch r {
		case '/', '\n', '\r', '\t':
			continue
		case 'X', 'x':
			mark = PlayerX
		case 'O', 'o':
			mark = PlayerO
		case '.', '_', '-', ' ':
			mark = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, r)
		}

		if n == len(board) {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, len(board))
		}

		board[n] = mark
		n++
	}

	if n != len(board) {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, n, len(board))
	}

	return board, nil
}
