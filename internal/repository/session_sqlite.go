package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type sqliteSession struct {
	conn *sql.DB
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	sweptAt time.Time
}

// NewSQLiteSessionRepository stores snapshots in the sessions table. A zero ttl keeps them forever.
func NewSQLiteSessionRepository(conn *sql.DB, ttl time.Duration) SessionRepository {
	return &sqliteSession{
		conn: conn,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (that *sqliteSession) Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.sweep(ctx); err != nil {
		return err
	}

	query := `INSERT INTO sessions (id, snapshot, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, expires_at = excluded.expires_at`

	if _, err = that.conn.ExecContext(ctx, query, id, string(snapshotJSON), that.expiresAt()); err != nil {
		return fmt.Errorf("can't save session: %w", err)
	}

	return nil
}

func (that *sqliteSession) GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error) {
	query := `SELECT snapshot FROM sessions WHERE id = ? AND expires_at > ?`

	var response string

	err := that.conn.QueryRowContext(ctx, query, id, that.now().UnixNano()).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("can't find session: %w", err)
	}

	var snapshot tictactoe.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %w", apperror.ErrCorruptedSnapshot, err)
	}

	return snapshot, nil
}

func (that *sqliteSession) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ? AND expires_at > ?`

	result, err := that.conn.ExecContext(ctx, query, id, that.now().UnixNano())
	if err != nil {
		return fmt.Errorf("can't delete session: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't count deleted sessions: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return nil
}

// sweep deletes expired rows, at most once per ttl.
func (that *sqliteSession) sweep(ctx context.Context) error {
	if that.ttl <= 0 {
		return nil
	}

	now := that.now()

	that.mu.Lock()
	due := now.Sub(that.sweptAt) >= that.ttl
	if due {
		that.sweptAt = now
	}
	that.mu.Unlock()

	if !due {
		return nil
	}

	if _, err := that.conn.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UnixNano()); err != nil {
		return fmt.Errorf("can't delete expired sessions: %w", err)
	}

	return nil
}

func (that *sqliteSession) expiresAt() int64 {
	if that.ttl <= 0 {
		return math.MaxInt64
	}

	return that.now().Add(that.ttl).UnixNano()
}
