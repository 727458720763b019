package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// LegalMoves - returns every empty cell in row-major order. A terminal board
// has no moves: the result is empty, never nil.
func LegalMoves(board entity.Board) []entity.Move {
	if board.IsTerminal() {
		return []entity.Move{}
	}

	moves := make([]entity.Move, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, entity.MoveFromIndex(i))
		}
	}

	return moves
}
