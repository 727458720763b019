package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie Mark = "-"
)

// Game is an in-memory record of a single match. Turn is a snapshot of
// Board.CurrentPlayer and is recomputed after every move.
type Game struct {
	ID     string `json:"id"`
	Board  Board  `json:"board"`
	Moves  []Move `json:"moves"`
	Winner Mark   `json:"winner"`
	Status string `json:"status"`
	Turn   Mark   `json:"player_turn"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(),
		Moves:  []Move{},
		Status: StatusOngoing,
		Turn:   PlayerX,
	}
}

// DetermineGameResult returns the winning mark, PlayerTie for a full board
// without a line, or EmptyCell while the game continues.
func (that *Game) DetermineGameResult() Mark {
	if winner := that.Board.Winner(); winner != EmptyCell {
		return winner
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return EmptyCell
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins or tie
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Winner = EmptyCell
		that.Status = StatusOngoing
		that.Turn = that.Board.CurrentPlayer()
	}
}

func (that *Game) MakeTurn(playerMark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Board.CurrentPlayer() != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Board.Apply(move)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.Moves = append(that.Moves, move)

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
