package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type searcher interface {
	BestMoveFor(ctx context.Context, board entity.Board, side entity.Mark) (entity.Move, bool, error)
	Evaluate(ctx context.Context, board entity.Board) (minimax.Analysis, error)
}

type solutionRepo interface {
	Save(ctx context.Context, solution *entity.Solution) error
	Get(ctx context.Context, board entity.Board, side entity.Mark) (*entity.Solution, error)
}

// Report describes a position for callers outside the engine.
type Report struct {
	Board      string              `json:"board"`
	Player     entity.Mark         `json:"player"`
	Terminal   bool                `json:"terminal"`
	Winner     entity.Mark         `json:"winner,omitempty"`
	Utility    *int                `json:"utility,omitempty"`
	LegalMoves []entity.Move       `json:"legal_moves"`
	BestMove   *entity.Move        `json:"best_move,omitempty"`
	Value      int                 `json:"value"`
	Moves      []minimax.MoveValue `json:"moves"`
}

type AnalysisService interface {
	BestMove(ctx context.Context, board entity.Board) (entity.Move, bool, error)
	Analyze(ctx context.Context, board entity.Board) (*Report, error)
	Play(board entity.Board, move entity.Move) (entity.Board, error)
}

type analysisService struct {
	logger *slog.Logger

	rules        tictactoe.Rules
	searcher     searcher
	solutionRepo solutionRepo
}

func NewAnalysisService(logger *slog.Logger, searcher searcher, solutionRepo solutionRepo) AnalysisService {
	return &analysisService{
		logger:       logger.With("component", "analysis"),
		rules:        tictactoe.NewRules(),
		searcher:     searcher,
		solutionRepo: solutionRepo,
	}
}

// BestMove answers from the solution cache when it can. The opening is
// randomized, so the empty board always goes to the searcher.
func (that *analysisService) BestMove(ctx context.Context, board entity.Board) (entity.Move, bool, error) {
	if that.rules.IsTerminal(board) {
		return entity.Move{}, false, nil
	}

	side := that.rules.CurrentPlayer(board)

	if board == entity.NewBoard() {
		return that.search(ctx, board, side)
	}

	log := that.logger.With("board", board.String(), "side", side)

	solution, err := that.solutionRepo.Get(ctx, board, side)
	switch {
	case err == nil:
		log.Debug("solution cache hit")
		return solution.Move, true, nil
	case errors.Is(err, apperror.ErrNotFound):
	default:
		log.Warn("failed to read solution cache", "error", err)
	}

	move, ok, err := that.search(ctx, board, side)
	if err != nil || !ok {
		return move, ok, err
	}

	if err = that.solutionRepo.Save(ctx, &entity.Solution{Board: board, Side: side, Move: move}); err != nil {
		log.Warn("failed to save solution", "error", err)
	}

	return move, true, nil
}

func (that *analysisService) search(ctx context.Context, board entity.Board, side entity.Mark) (entity.Move, bool, error) {
	move, ok, err := that.searcher.BestMoveFor(ctx, board, side)
	if err != nil {
		return entity.Move{}, false, fmt.Errorf("failed to search best move: %w", err)
	}

	return move, ok, nil
}

func (that *analysisService) Analyze(ctx context.Context, board entity.Board) (*Report, error) {
	report := &Report{
		Board:      board.String(),
		Player:     that.rules.CurrentPlayer(board),
		Terminal:   that.rules.IsTerminal(board),
		Winner:     board.Winner(),
		LegalMoves: that.rules.LegalMoves(board),
	}

	analysis, err := that.searcher.Evaluate(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate board: %w", err)
	}

	report.Value = analysis.Value
	report.Moves = analysis.Moves

	if report.Terminal {
		utility := analysis.Value
		report.Utility = &utility
	}

	if analysis.Found {
		best := analysis.Best
		report.BestMove = &best
	}

	return report, nil
}

func (that *analysisService) Play(board entity.Board, move entity.Move) (entity.Board, error) {
	next, err := that.rules.Result(board, move)
	if err != nil {
		return board, fmt.Errorf("failed to play %s: %w", move, err)
	}

	return next, nil
}
