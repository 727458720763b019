package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

type mockSearcher struct {
	mock.Mock
}

func (that *mockSearcher) BestMoveFor(ctx context.Context, board entity.Board, side entity.Mark) (entity.Move, bool, error) {
	args := that.Called(ctx, board, side)
	return args.Get(0).(entity.Move), args.Bool(1), args.Error(2)
}

func (that *mockSearcher) Evaluate(ctx context.Context, board entity.Board) (minimax.Analysis, error) {
	args := that.Called(ctx, board)
	return args.Get(0).(minimax.Analysis), args.Error(1)
}

type mockSolutionRepo struct {
	mock.Mock
}

func (that *mockSolutionRepo) Save(ctx context.Context, solution *entity.Solution) error {
	args := that.Called(ctx, solution)
	return args.Error(0)
}

func (that *mockSolutionRepo) Get(ctx context.Context, board entity.Board, side entity.Mark) (*entity.Solution, error) {
	args := that.Called(ctx, board, side)

	solution, _ := args.Get(0).(*entity.Solution)

	return solution, args.Error(1)
}
