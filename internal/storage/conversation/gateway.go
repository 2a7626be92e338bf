package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/model/chat"
)

// ErrNotFound reports that no conversation row exists for the id.
// Transport or server failures are returned as distinct errors so
// callers never mistake an outage for a fresh patient.
var ErrNotFound = errors.New("conversation not found")

// Snapshot is the full conversation state as stored and retrieved at
// once: replace-by-id, no partial updates.
type Snapshot struct {
	ID        string         `json:"id"`
	Messages  []chat.Message `json:"messages"`
	Emotion   emotion.Label  `json:"emotion"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Gateway is the durable system of record for conversations, keyed by
// patient identifier.
type Gateway interface {
	Load(ctx context.Context, id string) (*Snapshot, error)
	Upsert(ctx context.Context, snap *Snapshot) error
}
