package lobby

import (
	"context"
	"sync"
)

// Repo is the player-presence index: which lobby currently holds a player.
// It exists to refuse duplicate joins and to answer lookups without walking
// every lobby. The in-memory implementation is the default; the redis one
// lets the index survive a restart.
type Repo interface {
	Assign(ctx context.Context, playerID, lobbyID string, ttlSeconds int) error
	Release(ctx context.Context, playerID string) error
	LobbyOf(ctx context.Context, playerID string) (string, error)
}

type memRepo struct {
	mu      sync.Mutex
	players map[string]string // playerID -> lobbyID
}

func NewMemoryRepo() Repo {
	return &memRepo{players: make(map[string]string)}
}

func (m *memRepo) Assign(ctx context.Context, playerID, lobbyID string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// TTL is a redis concern, the memory index lives and dies with the process
	m.players[playerID] = lobbyID
	return nil
}

func (m *memRepo) Release(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	return nil
}

func (m *memRepo) LobbyOf(ctx context.Context, playerID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[playerID], nil
}
