// Package minimax chooses moves by exhaustive minimax over the full game tree.
// X maximizes the utility and O minimizes it.
package minimax

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Evaluator interface {
	CurrentPlayer(board entity.Board) entity.Mark
	LegalMoves(board entity.Board) []entity.Move
	IsTerminal(board entity.Board) bool
	Utility(board entity.Board) (int, error)
}

type MoveValue struct {
	Move  entity.Move `json:"move"`
	Value int         `json:"value"`
}

// Analysis is the outcome of a root search. Found is false when the board is
// terminal; Moves holds the value of every root move in row-major order.
type Analysis struct {
	Side  entity.Mark `json:"side"`
	Best  entity.Move `json:"best"`
	Found bool        `json:"found"`
	Value int         `json:"value"`
	Moves []MoveValue `json:"moves"`
	Nodes int         `json:"nodes"`
}

type Searcher struct {
	logger  *slog.Logger
	rules   Evaluator
	opening Selector
	workers int
}

type Option func(*Searcher)

func WithEvaluator(rules Evaluator) Option {
	return func(that *Searcher) {
		that.rules = rules
	}
}

func WithSelector(selector Selector) Option {
	return func(that *Searcher) {
		that.opening = selector
	}
}

// WithWorkers evaluates root moves on up to n goroutines. n <= 1 keeps the
// search on the calling goroutine.
func WithWorkers(n int) Option {
	return func(that *Searcher) {
		that.workers = n
	}
}

func New(logger *slog.Logger, opts ...Option) *Searcher {
	searcher := &Searcher{
		logger:  logger.With("component", "minimax"),
		rules:   tictactoe.NewRules(),
		opening: NewRandomSelector(time.Now().UnixNano()),
		workers: 1,
	}

	for _, opt := range opts {
		opt(searcher)
	}

	return searcher
}

// BestMove - returns the optimal move for the side to move. ok is false when
// the board is terminal.
func (that *Searcher) BestMove(ctx context.Context, board entity.Board) (entity.Move, bool, error) {
	return that.BestMoveFor(ctx, board, that.rules.CurrentPlayer(board))
}

// BestMoveFor - returns the optimal move for side, assuming both sides play
// optimally afterwards. side places its mark at the root and the sides
// alternate below it.
func (that *Searcher) BestMoveFor(ctx context.Context, board entity.Board, side entity.Mark) (entity.Move, bool, error) {
	if !side.IsPlayer() {
		return entity.Move{}, false, fmt.Errorf("%w: unknown side %q", apperror.ErrInvalidMove, side)
	}

	if that.rules.IsTerminal(board) {
		return entity.Move{}, false, nil
	}

	moves, err := that.legalMoves(board)
	if err != nil {
		return entity.Move{}, false, err
	}

	if len(moves) == len(board) {
		move, err := that.openingMove(moves)
		if err != nil {
			return entity.Move{}, false, err
		}

		return move, true, nil
	}

	values, nodes, err := that.evaluateRoot(ctx, board, side, moves)
	if err != nil {
		return entity.Move{}, false, err
	}

	best := pick(side, values)

	that.logger.Debug("search finished",
		"board", board.String(), "side", side, "move", best.Move.String(), "value", best.Value, "nodes", nodes)

	return best.Move, true, nil
}

// Evaluate - scores every legal move for the side to move. On the empty board
// Best comes from the opening selector, the values are still computed.
func (that *Searcher) Evaluate(ctx context.Context, board entity.Board) (Analysis, error) {
	side := that.rules.CurrentPlayer(board)
	analysis := Analysis{Side: side, Moves: []MoveValue{}}

	if that.rules.IsTerminal(board) {
		value, err := that.rules.Utility(board)
		if err != nil {
			return analysis, fmt.Errorf("failed to evaluate terminal board: %w", err)
		}

		analysis.Value = value
		analysis.Nodes = 1

		return analysis, nil
	}

	moves, err := that.legalMoves(board)
	if err != nil {
		return analysis, err
	}

	values, nodes, err := that.evaluateRoot(ctx, board, side, moves)
	if err != nil {
		return analysis, err
	}

	best := pick(side, values)

	analysis.Found = true
	analysis.Best = best.Move
	analysis.Value = best.Value
	analysis.Moves = values
	analysis.Nodes = nodes

	if len(moves) == len(board) {
		if analysis.Best, err = that.openingMove(moves); err != nil {
			return analysis, err
		}
	}

	return analysis, nil
}

func (that *Searcher) openingMove(moves []entity.Move) (entity.Move, error) {
	i := that.opening.Choose(len(moves))
	if i < 0 || i >= len(moves) {
		return entity.Move{}, fmt.Errorf("%w: opening selector returned %d of %d", apperror.ErrInvariantViolation, i, len(moves))
	}

	return moves[i], nil
}

func (that *Searcher) legalMoves(board entity.Board) ([]entity.Move, error) {
	moves := that.rules.LegalMoves(board)
	if len(moves) == 0 {
		that.logger.Error("non-terminal board without legal moves", "board", board.String())

		return nil, fmt.Errorf("%w: no legal moves on non-terminal board %s", apperror.ErrInvariantViolation, board)
	}

	return moves, nil
}

// evaluateRoot returns the value of every root move in enumeration order and
// the number of visited nodes.
func (that *Searcher) evaluateRoot(
	ctx context.Context, board entity.Board, side entity.Mark, moves []entity.Move,
) ([]MoveValue, int, error) {
	values := make([]MoveValue, len(moves))
	nodes := make([]int, len(moves))

	evaluate := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("search interrupted: %w", err)
		}

		value, err := that.value(board.Place(moves[i], side), side.Opponent(), &nodes[i])
		if err != nil {
			return err
		}

		values[i] = MoveValue{Move: moves[i], Value: value}

		return nil
	}

	if that.workers <= 1 {
		for i := range moves {
			if err := evaluate(ctx, i); err != nil {
				return nil, 0, err
			}
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(that.workers)

		for i := range moves {
			i := i
			group.Go(func() error {
				return evaluate(groupCtx, i)
			})
		}

		if err := group.Wait(); err != nil {
			return nil, 0, err
		}
	}

	total := 1
	for _, n := range nodes {
		total += n
	}

	return values, total, nil
}

// value is the minimax value of board with side to move.
func (that *Searcher) value(board entity.Board, side entity.Mark, nodes *int) (int, error) {
	*nodes++

	if that.rules.IsTerminal(board) {
		utility, err := that.rules.Utility(board)
		if err != nil {
			return 0, fmt.Errorf("failed to score leaf: %w", err)
		}

		return utility, nil
	}

	moves, err := that.legalMoves(board)
	if err != nil {
		return 0, err
	}

	best := initialValue(side)
	for _, move := range moves {
		value, err := that.value(board.Place(move, side), side.Opponent(), nodes)
		if err != nil {
			return 0, err
		}

		if better(side, value, best) {
			best = value
		}
	}

	return best, nil
}

// pick returns the first move holding the extreme value for side.
func pick(side entity.Mark, values []MoveValue) MoveValue {
	best := MoveValue{Value: initialValue(side)}
	for i, candidate := range values {
		if i == 0 || better(side, candidate.Value, best.Value) {
			best = candidate
		}
	}

	return best
}

func initialValue(side entity.Mark) int {
	if side == entity.PlayerX {
		return math.MinInt
	}

	return math.MaxInt
}

// better reports whether value strictly improves on best for side, which keeps
// the earliest move on ties.
func better(side entity.Mark, value, best int) bool {
	if side == entity.PlayerX {
		return value > best
	}

	return value < best
}
