package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

type analysisService interface {
	Analyze(ctx context.Context, board entity.Board) (*service.Report, error)
	Play(board entity.Board, move entity.Move) (entity.Board, error)
}

type matchService interface {
	SelfPlay(ctx context.Context) (*entity.Game, error)
}

type handlers struct {
	logger   *slog.Logger
	analysis analysisService
	match    matchService
}

type boardRequest struct {
	Board string       `json:"board"`
	Move  *entity.Move `json:"move,omitempty"`
}

type moveResponse struct {
	Board    string      `json:"board"`
	Player   entity.Mark `json:"player"`
	Terminal bool        `json:"terminal"`
	Winner   entity.Mark `json:"winner,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	request, board, ok := that.decodeBoard(w, r)
	if !ok {
		return
	}

	if request.Move != nil {
		that.writeError(w, r, http.StatusBadRequest, errors.New("analysis does not take a move"))
		return
	}

	report, err := that.analysis.Analyze(r.Context(), board)
	if err != nil {
		that.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, report)
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	request, board, ok := that.decodeBoard(w, r)
	if !ok {
		return
	}

	if request.Move == nil {
		that.writeError(w, r, http.StatusBadRequest, errors.New("move is required"))
		return
	}

	next, err := that.analysis.Play(board, *request.Move)
	if errors.Is(err, apperror.ErrInvalidMove) {
		that.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		that.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, moveResponse{
		Board:    next.String(),
		Player:   next.CurrentPlayer(),
		Terminal: next.IsTerminal(),
		Winner:   next.Winner(),
	})
}

func (that *handlers) selfPlay(w http.ResponseWriter, r *http.Request) {
	game, err := that.match.SelfPlay(r.Context())
	if err != nil {
		that.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	that.writeJSON(w, r, http.StatusOK, game)
}

func (that *handlers) decodeBoard(w http.ResponseWriter, r *http.Request) (*boardRequest, entity.Board, bool) {
	var request boardRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeError(w, r, http.StatusBadRequest, errors.New("malformed request body"))
		return nil, entity.Board{}, false
	}

	board, err := entity.ParseBoard(request.Board)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, err)
		return nil, entity.Board{}, false
	}

	return &request, board, true
}

func (that *handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}

	that.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (that *handlers) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
