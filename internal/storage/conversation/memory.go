package conversation

import (
	"context"
	"sync"

	"github.com/glucoamigo/backend/internal/model/chat"
)

// MemoryGateway is a map-backed Gateway for tests and database-less
// development runs. Snapshots are copied on the way in and out.
type MemoryGateway struct {
	mu    sync.RWMutex
	items map[string]Snapshot
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{items: make(map[string]Snapshot)}
}

func (g *MemoryGateway) Load(_ context.Context, id string) (*Snapshot, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap, ok := g.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := snap
	copied.Messages = append([]chat.Message(nil), snap.Messages...)
	return &copied, nil
}

func (g *MemoryGateway) Upsert(_ context.Context, snap *Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stored := *snap
	stored.Messages = append([]chat.Message(nil), snap.Messages...)
	if prev, ok := g.items[snap.ID]; ok {
		// Replace-by-id keeps the original creation timestamp.
		stored.CreatedAt = prev.CreatedAt
	}
	g.items[snap.ID] = stored
	return nil
}
