package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps the live game of every browser session. Saving overwrites the previous snapshot.
type SessionRepository interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type redisSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository stores snapshots in redis. A zero ttl keeps them forever.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSession{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisSession) Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, sessionKeyPrefix+id, snapshotJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *redisSession) GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	var snapshot tictactoe.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %w", apperror.ErrCorruptedSnapshot, err)
	}

	return snapshot, nil
}

func (that *redisSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return nil
}
