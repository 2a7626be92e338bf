package conversation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresGateway stores one row per conversation with the transcript
// serialized as a JSONB array.
type PostgresGateway struct {
	db *sql.DB
}

// NewPostgresGateway wraps an open database handle.
func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func (g *PostgresGateway) Load(ctx context.Context, id string) (*Snapshot, error) {
	const query = `SELECT id, messages, emotion, created_at, updated_at FROM conversations WHERE id = $1`

	row := g.db.QueryRowContext(ctx, query, id)

	var snap Snapshot
	var messagesJSON []byte
	err := row.Scan(&snap.ID, &messagesJSON, &snap.Emotion, &snap.CreatedAt, &snap.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}

	if len(messagesJSON) > 0 {
		if err := json.Unmarshal(messagesJSON, &snap.Messages); err != nil {
			return nil, fmt.Errorf("unmarshal messages for %s: %w", id, err)
		}
	}

	return &snap, nil
}

func (g *PostgresGateway) Upsert(ctx context.Context, snap *Snapshot) error {
	messagesJSON, err := json.Marshal(snap.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages for %s: %w", snap.ID, err)
	}

	const query = `
		INSERT INTO conversations (id, messages, emotion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			messages = EXCLUDED.messages,
			emotion = EXCLUDED.emotion,
			updated_at = EXCLUDED.updated_at
	`
	_, err = g.db.ExecContext(ctx, query,
		snap.ID, messagesJSON, snap.Emotion, snap.CreatedAt, snap.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert conversation %s: %w", snap.ID, err)
	}
	return nil
}
