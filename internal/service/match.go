package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type MatchService interface {
	SelfPlay(ctx context.Context) (*entity.Game, error)
}

type matchService struct {
	logger *slog.Logger

	botService BotService
}

func NewMatchService(logger *slog.Logger, botService BotService) MatchService {
	return &matchService{
		logger:     logger.With("component", "match"),
		botService: botService,
	}
}

// SelfPlay lets the engine play both sides from the empty board.
func (that *matchService) SelfPlay(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())
	log := that.logger.With("method", "SelfPlay", "gameID", game.ID)

	for game.IsOngoing() {
		if len(game.Moves) >= len(game.Board) {
			return nil, fmt.Errorf("game %s did not finish after %d moves", game.ID, len(game.Moves))
		}

		if err := that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}
	}

	log.Info("self-play finished", "winner", game.Winner, "board", game.Board.String())

	return game, nil
}
