package lobby

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"doudizhu/internal/game/combo"
	"doudizhu/internal/utils"
	ws "doudizhu/internal/websocket"
)

// Directory owns every lobby in the process. Joins scan for an open lobby of
// the requested rule set and fall back to creating one, so a join can only
// fail for a player already seated somewhere. Its own mutex serializes the
// lobby list; each lobby serializes itself.
type Directory struct {
	mu      sync.Mutex
	lobbies []*Lobby

	cfg          Config
	simpleBias   float64
	advancedBias float64
	playerTTL    int
	hub          ws.HubInterface
	repo         Repo
}

func NewDirectory(cfg Config, simpleBias, advancedBias float64, playerTTL int, hub ws.HubInterface, repo Repo) *Directory {
	return &Directory{
		cfg:          cfg,
		simpleBias:   simpleBias,
		advancedBias: advancedBias,
		playerTTL:    playerTTL,
		hub:          hub,
		repo:         repo,
	}
}

// Join seats the player in the first open lobby running the requested rule
// set, creating a fresh lobby when none accepts.
func (d *Directory) Join(ctx context.Context, playerID, name string, rules combo.RuleSet) (*Lobby, error) {
	if existing, _ := d.repo.LobbyOf(ctx, playerID); existing != "" {
		return nil, fmt.Errorf("player %s already in lobby %s", playerID, existing)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, l := range d.lobbies {
		if l.Rules() != rules {
			continue
		}
		if l.TryJoin(playerID, name) {
			d.recordJoin(ctx, playerID, l)
			return l, nil
		}
	}

	cfg := d.cfg
	cfg.PairBias = d.simpleBias
	if rules == combo.Advanced {
		cfg.PairBias = d.advancedBias
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	l := New(uuid.NewString(), rules, cfg, d.hub, d.lobbyFinished)
	d.lobbies = append(d.lobbies, l)
	utils.Info.Printf("created %s lobby %s", rules, l.ID())

	if !l.TryJoin(playerID, name) {
		// freshly created and empty, this cannot refuse
		return nil, fmt.Errorf("could not seat player %s", playerID)
	}
	d.recordJoin(ctx, playerID, l)
	return l, nil
}

func (d *Directory) recordJoin(ctx context.Context, playerID string, l *Lobby) {
	if err := d.repo.Assign(ctx, playerID, l.ID(), d.playerTTL); err != nil {
		utils.Error.Printf("presence assign failed for %s: %v", playerID, err)
	}
}

// Leave removes the player from whichever lobby holds them. Unknown players
// are a no-op.
func (d *Directory) Leave(ctx context.Context, playerID string) {
	l, ok := d.Lookup(playerID)
	if !ok {
		_ = d.repo.Release(ctx, playerID)
		return
	}
	l.Leave(playerID)
	if err := d.repo.Release(ctx, playerID); err != nil {
		utils.Error.Printf("presence release failed for %s: %v", playerID, err)
	}
	d.reapEmpty()
}

// Lookup finds the lobby currently seating a player.
func (d *Directory) Lookup(playerID string) (*Lobby, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.lobbies {
		if l.HasPlayer(playerID) {
			return l, true
		}
	}
	return nil, false
}

// LobbyByID resolves a lobby id, for the status API.
func (d *Directory) LobbyByID(id string) (*Lobby, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.lobbies {
		if l.ID() == id {
			return l, true
		}
	}
	return nil, false
}

// lobbyFinished is the lobby's end-of-life callback: release every seat's
// presence entry and drop the lobby from the list.
func (d *Directory) lobbyFinished(done *Lobby, playerIDs []string) {
	ctx := context.Background()
	for _, id := range playerIDs {
		if err := d.repo.Release(ctx, id); err != nil {
			utils.Error.Printf("presence release failed for %s: %v", id, err)
		}
	}
	d.mu.Lock()
	for i, l := range d.lobbies {
		if l == done {
			d.lobbies = append(d.lobbies[:i], d.lobbies[i+1:]...)
			break
		}
	}
	d.mu.Unlock()
	utils.Info.Printf("lobby %s destroyed", done.ID())
}

func (d *Directory) reapEmpty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.lobbies[:0]
	for _, l := range d.lobbies {
		if l.PlayerCount() > 0 || l.State() == WaitingForPlayers {
			kept = append(kept, l)
		}
	}
	d.lobbies = kept
}

// Info is one row of the status API's lobby listing.
type Info struct {
	LobbyID    string   `json:"lobbyId"`
	Rules      string   `json:"rules"`
	State      string   `json:"state"`
	Players    int      `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	Names      []string `json:"playerNames"`
}

func (d *Directory) LobbyInfo() []Info {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Info, 0, len(d.lobbies))
	for _, l := range d.lobbies {
		out = append(out, Info{
			LobbyID:    l.ID(),
			Rules:      l.Rules().String(),
			State:      l.State().String(),
			Players:    l.PlayerCount(),
			MaxPlayers: l.MaxPlayers(),
			Names:      l.PlayerNames(),
		})
	}
	return out
}
