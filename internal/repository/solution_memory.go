package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memorySolution struct {
	mu        sync.RWMutex
	solutions map[string]entity.Solution
}

func NewMemorySolutionRepository() SolutionRepository {
	return &memorySolution{
		solutions: make(map[string]entity.Solution),
	}
}

func (that *memorySolution) Save(_ context.Context, solution *entity.Solution) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.solutions[solution.Key()] = *solution

	return nil
}

func (that *memorySolution) Get(_ context.Context, board entity.Board, side entity.Mark) (*entity.Solution, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	solution, ok := that.solutions[entity.SolutionKey(board, side)]
	if !ok {
		return nil, apperror.ErrNotFound
	}

	return &solution, nil
}
