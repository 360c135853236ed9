package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errMissingCell = errors.New("cell is required")

type gamePlayService interface {
	NewGame(ctx context.Context, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (tictactoe.Outcome, error)
}

type botService interface {
	Suggest(board entity.Board, mark entity.Mark) (tictactoe.Outcome, error)
}

// Defaults apply to POST /games when the request leaves a field empty.
type Defaults struct {
	Mode      entity.Mode
	HumanMark entity.Mark
}

type settingsRequest struct {
	Mode      string `json:"mode"`
	HumanMark string `json:"human_mark"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type bestMoveRequest struct {
	Board []string `json:"board"`
	Mark  string   `json:"mark"`
}

// board rejects any length other than a full grid before converting.
func (that bestMoveRequest) board() (entity.Board, error) {
	var board entity.Board
	if len(that.Board) != entity.BoardSize {
		return board, fmt.Errorf("%w: board has %d cells, want %d", apperror.ErrInvalidCell, len(that.Board), entity.BoardSize)
	}

	for i, cell := range that.Board {
		board[i] = entity.Mark(cell)
	}

	return board, board.Validate()
}

type moveResponse struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	gamePlay gamePlayService
	bot      botService
	defaults Defaults
}

// NewRouter wires the game API routes.
func NewRouter(logger *slog.Logger, gamePlay gamePlayService, bot botService, defaults Defaults) http.Handler {
	h := &handlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
		bot:      bot,
		defaults: defaults,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Post("/best-move", h.bestMove)

	r.Post("/games", h.createGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Delete("/", h.deleteGame)
		r.Post("/turns", h.makeTurn)
		r.Post("/restart", h.restart)
		r.Get("/hint", h.hint)
	})

	return r
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !that.decode(w, r, &req) {
		return
	}

	mode, humanMark := entity.Mode(req.Mode), entity.Mark(req.HumanMark)
	if mode == "" {
		mode = that.defaults.Mode
	}
	if humanMark == entity.EmptyCell {
		humanMark = that.defaults.HumanMark
	}

	game, err := that.gamePlay.NewGame(r.Context(), mode, humanMark)
	if err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingCell.Error()})
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !that.decode(w, r, &req) {
		return
	}

	game, err := that.gamePlay.Restart(r.Context(), chi.URLParam(r, "id"), entity.Mode(req.Mode), entity.Mark(req.HumanMark))
	if err != nil {
		that.writeError(w, "restart", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) hint(w http.ResponseWriter, r *http.Request) {
	outcome, err := that.gamePlay.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "hint", err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Cell: outcome.Cell, Score: outcome.Score})
}

// bestMove runs the engine on a caller-supplied board without touching storage.
func (that *handlers) bestMove(w http.ResponseWriter, r *http.Request) {
	var req bestMoveRequest
	if !that.decode(w, r, &req) {
		return
	}

	mark, err := entity.ParseMark(req.Mark)
	if err != nil {
		that.writeError(w, "bestMove", err)
		return
	}

	board, err := req.board()
	if err != nil {
		that.writeError(w, "bestMove", err)
		return
	}

	outcome, err := that.bot.Suggest(board, mark)
	if err != nil {
		that.writeError(w, "bestMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Cell: outcome.Cell, Score: outcome.Score})
}

// decode reads an optional JSON body. An empty body leaves dst untouched.
func (that *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	return true
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "status", status, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNoMovesAvailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
