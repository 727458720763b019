package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqliteSolution struct {
	conn *sql.DB
}

func NewSQLiteSolutionRepository(conn *sql.DB) SolutionRepository {
	return &sqliteSolution{
		conn: conn,
	}
}

func (that *sqliteSolution) Save(ctx context.Context, solution *entity.Solution) error {
	query := `INSERT OR REPLACE INTO solutions (side, board, move_row, move_col) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		string(solution.Side), solution.Board.String(), solution.Move.Row, solution.Move.Col)
	if err != nil {
		return fmt.Errorf("can't save solution: %w", err)
	}

	return nil
}

func (that *sqliteSolution) Get(ctx context.Context, board entity.Board, side entity.Mark) (*entity.Solution, error) {
	query := `SELECT move_row, move_col FROM solutions WHERE side = ? AND board = ?`

	solution := entity.Solution{Board: board, Side: side}

	err := that.conn.QueryRowContext(ctx, query, string(side), board.String()).
		Scan(&solution.Move.Row, &solution.Move.Col)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find solution: %w", err)
	}

	return &solution, nil
}
