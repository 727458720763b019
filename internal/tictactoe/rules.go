package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Rules is the stateless contract the search runs against.
type Rules struct{}

func NewRules() Rules {
	return Rules{}
}

func (Rules) CurrentPlayer(board entity.Board) entity.Mark {
	return board.CurrentPlayer()
}

func (Rules) LegalMoves(board entity.Board) []entity.Move {
	return LegalMoves(board)
}

func (Rules) IsTerminal(board entity.Board) bool {
	return board.IsTerminal()
}

func (Rules) Utility(board entity.Board) (int, error) {
	utility, err := board.Utility()
	if err != nil {
		return 0, fmt.Errorf("utility of %s: %w", board, err)
	}

	return utility, nil
}

// Result - returns the board after the current player takes the move.
func (Rules) Result(board entity.Board, move entity.Move) (entity.Board, error) {
	next, err := board.Apply(move)
	if err != nil {
		return board, fmt.Errorf("invalid turn: %w", err)
	}

	return next, nil
}
