package rest

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
)

const maxRequestBody = 1 << 10

//go:embed web/index.html
var indexPage []byte

type Handlers interface {
	Index(w http.ResponseWriter, r *http.Request)

	GetGame(w http.ResponseWriter, r *http.Request)
	PlayRound(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
}

type gameService interface {
	GetGame(ctx context.Context, sessionID string) (service.View, error)
	PlayRound(ctx context.Context, sessionID string, row, col int) (service.View, error)
	ResetGame(ctx context.Context, sessionID string) (service.View, error)
}

type roundRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
}

func NewHandlers(logger *slog.Logger, gameService gameService) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameService: gameService,
	}
}

func (that *handlers) Index(w http.ResponseWriter, r *http.Request) {
	pkg.EnsureSessionCookie(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexPage); err != nil {
		that.logger.Error("failed to write page", "error", err)
	}
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSessionCookie(w, r)

	view, err := that.gameService.GetGame(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *handlers) PlayRound(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSessionCookie(w, r)

	var req roundRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	view, err := that.gameService.PlayRound(r.Context(), sessionID, *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "PlayRound", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.EnsureSessionCookie(w, r)

	view, err := that.gameService.ResetGame(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "ResetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrInvalidCoordinate) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
