package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type moveFinder interface {
	BestMove(ctx context.Context, board entity.Board) (entity.Move, bool, error)
}

type botService struct {
	moveFinder moveFinder
}

func NewBotService(moveFinder moveFinder) BotService {
	return &botService{
		moveFinder: moveFinder,
	}
}

// MakeTurn plays the engine's move for whichever side is to move.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	move, ok, err := that.moveFinder.BestMove(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("bot failed to find a move: %w", err)
	}

	if !ok {
		return ErrNoAvailableMoves
	}

	if err = game.MakeTurn(game.Board.CurrentPlayer(), move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
