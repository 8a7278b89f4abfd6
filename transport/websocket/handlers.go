package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/service"
)

func (that *Server) handleGameState(ctx context.Context, sessionID string, _ *Message) (service.View, error) {
	return that.gameService.GetGame(ctx, sessionID)
}

func (that *Server) handleGameRound(ctx context.Context, sessionID string, message *Message) (service.View, error) {
	var payload RoundPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return service.View{}, fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if payload.Row == nil || payload.Col == nil {
		return service.View{}, fmt.Errorf("%w: row and col are required", errInvalidPayload)
	}

	return that.gameService.PlayRound(ctx, sessionID, *payload.Row, *payload.Col)
}

func (that *Server) handleGameReset(ctx context.Context, sessionID string, _ *Message) (service.View, error) {
	return that.gameService.ResetGame(ctx, sessionID)
}
