package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const maxMessageSize = 1 << 12

type gameService interface {
	GetGame(ctx context.Context, sessionID string) (service.View, error)
	PlayRound(ctx context.Context, sessionID string, row, col int) (service.View, error)
	ResetGame(ctx context.Context, sessionID string) (service.View, error)
}

type handlerFunc func(ctx context.Context, sessionID string, message *Message) (service.View, error)

// Server upgrades browser connections on /ws and relays board clicks to the game service.
type Server struct {
	logger      *slog.Logger
	gameService gameService

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameService gameService) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameService: gameService,
		handlers:    make(map[string]handlerFunc),
	}

	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionGameRound] = server.handleGameRound
	server.handlers[ActionGameReset] = server.handleGameReset

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID := pkg.EnsureSessionCookie(w, r)

	// the HTTP server timeouts must not apply to a long-lived connection
	rc := http.NewResponseController(w)
	if err := errors.Join(rc.SetReadDeadline(time.Time{}), rc.SetWriteDeadline(time.Time{})); err != nil {
		log.Warn("failed to clear connection deadlines", "error", err)
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer conn.CloseNow()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.handleMessages(r.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "session", sessionID, "error", err)
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}

			if errors.Is(err, context.Canceled) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError(ctx, conn, "", "invalid message"); err != nil {
				return err
			}
			continue
		}

		if err = that.processMessage(ctx, conn, sessionID, &message); err != nil {
			return err
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, sessionID string, message *Message) error {
	log := that.logger.With("method", "processMessage", "session", sessionID, "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		err := fmt.Errorf("%w: %q", apperror.ErrUnknownAction, message.Action)
		return that.sendError(ctx, conn, message.Action, err.Error())
	}

	view, err := handler(ctx, sessionID, message)
	switch {
	case errors.Is(err, apperror.ErrInvalidCoordinate), errors.Is(err, errInvalidPayload):
		return that.sendError(ctx, conn, message.Action, err.Error())
	case err != nil:
		log.Error("error processing message", "error", err)
		return that.sendError(ctx, conn, message.Action, "failed to process "+message.Action)
	}

	return that.sendMessage(ctx, conn, Message{Action: ActionGameState, Payload: mustMarshal(view)})
}

func (that *Server) sendMessage(ctx context.Context, conn *websocket.Conn, message Message) error {
	if err := wsjson.Write(ctx, conn, message); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendError(ctx context.Context, conn *websocket.Conn, action, text string) error {
	return that.sendMessage(ctx, conn, Message{
		Action:  ActionError,
		Payload: mustMarshal(ErrorPayload{Action: action, Error: text}),
	})
}
