package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	searcher := minimax.New(logger, minimax.WithSelector(minimax.FirstSelector{}))
	analysis := service.NewAnalysisService(logger, searcher, repository.NewMemorySolutionRepository())
	match := service.NewMatchService(logger, service.NewBotService(analysis))

	return NewRouter(logger, analysis, match)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestPing(t *testing.T) {
	rr := do(t, newTestServer(t), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestAnalysis(t *testing.T) {
	h := newTestServer(t)

	t.Run("Reports the winning move", func(t *testing.T) {
		// When: analysing a board where X wins at (0,2)
		rr := do(t, h, http.MethodPost, "/analysis", `{"board":"XX./OO./..."}`)

		// Then: the report names the move
		require.Equal(t, http.StatusOK, rr.Code)

		var report service.Report
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
		assert.Equal(t, entity.PlayerX, report.Player)
		require.NotNil(t, report.BestMove)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, *report.BestMove)
		assert.Len(t, report.Moves, 5)
	})

	t.Run("Finished board has a utility and no move", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/analysis", `{"board":"XOX/XOO/OXX"}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var report service.Report
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
		assert.True(t, report.Terminal)
		require.NotNil(t, report.Utility)
		assert.Equal(t, 0, *report.Utility)
		assert.Nil(t, report.BestMove)
	})

	t.Run("Bad board is a client error", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/analysis", `{"board":"XQ"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid board")
	})

	t.Run("Malformed body is a client error", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/analysis", `{`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMove(t *testing.T) {
	h := newTestServer(t)

	t.Run("Applies the move for the side to move", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/move", `{"board":"X../.../...","move":{"row":1,"col":1}}`)

		require.Equal(t, http.StatusOK, rr.Code)

		var response moveResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "X../.O./...", response.Board)
		assert.Equal(t, entity.PlayerX, response.Player)
		assert.False(t, response.Terminal)
	})

	t.Run("Occupied cell is unprocessable", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/move", `{"board":"X../.../...","move":{"row":0,"col":0}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid move")
	})

	t.Run("Out of range is unprocessable", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/move", `{"board":".........","move":{"row":3,"col":0}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Missing move is a client error", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/move", `{"board":"........."}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSelfPlay(t *testing.T) {
	rr := do(t, newTestServer(t), http.MethodPost, "/selfplay", "")

	require.Equal(t, http.StatusOK, rr.Code)

	var game entity.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, entity.StatusFinished, game.Status)
	assert.Equal(t, entity.PlayerTie, game.Winner)
	assert.Len(t, game.Moves, 9)
	assert.NotEmpty(t, game.ID)
}
