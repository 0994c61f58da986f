package lobby

import (
	"sync"
	"time"

	"doudizhu/internal/game/card"
	"doudizhu/internal/game/combo"
	"doudizhu/internal/game/table"
	"doudizhu/internal/utils"
	ws "doudizhu/internal/websocket"
)

// State is the lobby lifecycle phase.
type State int

const (
	WaitingForPlayers State = iota
	Bidding
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case WaitingForPlayers:
		return "waiting"
	case Bidding:
		return "bidding"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Config is the per-lobby tuning the directory hands out.
type Config struct {
	Seats           int
	OpeningHandSize int
	ReserveSize     int
	MoveTicks       int // countdown when the player can beat the table
	ShortTicks      int // countdown when they cannot
	TickInterval    time.Duration
	BidCap          int
	PairBias        float64
	Seed            int64
}

// outbound is a notification built under the lock and flushed after release,
// so the transport never sits inside a critical section.
type outbound struct {
	to  string // "" means broadcast to every seat
	msg ws.OutgoingMessage
}

// Lobby is one single-use game instance: it fills, deals once, runs bidding
// and play, and dies when somebody wins or everybody leaves. A single mutex
// serializes the message-handling path and the turn-timer loop.
type Lobby struct {
	id    string
	rules combo.RuleSet
	cfg   Config
	hub   ws.HubInterface

	mu      sync.Mutex
	state   State
	players []*Player
	deck    *card.Deck
	tbl     *table.Table
	turn    int

	// cooperative cancellation: the timer loop polls this once per tick
	cancelMove bool

	// bidding
	bidTurn   int
	bidLeader int // seat index, -1 until somebody raises
	highBid   int
	bidPasses int

	onFinished func(l *Lobby, playerIDs []string)
}

func New(id string, rules combo.RuleSet, cfg Config, hub ws.HubInterface, onFinished func(*Lobby, []string)) *Lobby {
	return &Lobby{
		id:         id,
		rules:      rules,
		cfg:        cfg,
		hub:        hub,
		state:      WaitingForPlayers,
		deck:       card.NewDeck(cfg.Seed),
		tbl:        table.New(rules),
		bidLeader:  -1,
		onFinished: onFinished,
	}
}

func (l *Lobby) ID() string           { return l.id }
func (l *Lobby) Rules() combo.RuleSet { return l.rules }

func (l *Lobby) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// TryJoin seats a player. It fails once the lobby has started, is full, or
// already holds this player; the directory then tries the next lobby.
// Filling the last seat deals the opening hands and starts the game.
func (l *Lobby) TryJoin(playerID, name string) bool {
	l.mu.Lock()
	if l.state != WaitingForPlayers || len(l.players) >= l.cfg.Seats {
		l.mu.Unlock()
		return false
	}
	for _, p := range l.players {
		if p.ID == playerID {
			l.mu.Unlock()
			return false
		}
	}
	p := &Player{ID: playerID, Name: name}
	l.players = append(l.players, p)
	utils.Info.Printf("player %s (%s) joined lobby %s (%d/%d)", playerID, name, l.id, len(l.players), l.cfg.Seats)

	var out []outbound
	out = append(out, outbound{msg: ws.OutgoingMessage{
		Event: ws.EventPlayerJoin,
		Data: map[string]any{
			"lobbyId":    l.id,
			"userName":   name,
			"players":    len(l.players),
			"maxPlayers": l.cfg.Seats,
		},
	}})

	if len(l.players) == l.cfg.Seats {
		out = append(out, l.startLocked()...)
	}
	l.mu.Unlock()
	l.flush(out)
	return true
}

// startLocked fires the opening deal and enters Bidding (advanced) or goes
// straight to Playing (simple has no bidding phase). The undealt remainder
// stays in the deck as the landlord's reserve.
func (l *Lobby) startLocked() []outbound {
	var out []outbound
	for _, p := range l.players {
		cards := l.deck.Draw(l.cfg.OpeningHandSize, l.cfg.PairBias)
		p.addCards(cards)
		out = append(out, outbound{to: p.ID, msg: ws.OutgoingMessage{
			Event: ws.EventDeal,
			Data:  map[string]any{"lobbyId": l.id, "cards": cards},
		}})
	}
	out = append(out, l.cardCountsLocked())

	if l.rules == combo.Advanced {
		l.state = Bidding
		l.bidTurn = 0
		out = append(out, l.bidTurnMsgLocked())
	} else {
		l.state = Playing
		l.turn = 0
	}
	go l.runLoop()
	return out
}

// Leave unseats a player mid-game or while waiting. An empty lobby finishes
// so the directory can reap it.
func (l *Lobby) Leave(playerID string) bool {
	l.mu.Lock()
	idx := l.seatOf(playerID)
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	name := l.players[idx].Name
	l.players = append(l.players[:idx], l.players[idx+1:]...)
	l.tbl.ClearPlayer(playerID)
	if l.turn >= len(l.players) {
		l.turn = 0
	}
	if l.bidTurn >= len(l.players) {
		l.bidTurn = 0
	}
	// seat indices above the vacated one shift down; a vanished leader means
	// nobody holds the bid anymore
	switch {
	case l.bidLeader == idx:
		l.bidLeader = -1
	case l.bidLeader > idx:
		l.bidLeader--
	}
	utils.Info.Printf("player %s (%s) left lobby %s (%d/%d)", playerID, name, l.id, len(l.players), l.cfg.Seats)

	var out []outbound
	finished := len(l.players) == 0
	if finished {
		l.state = Finished
	} else {
		out = append(out, outbound{msg: ws.OutgoingMessage{
			Event: ws.EventPlayerLeave,
			Data:  map[string]any{"lobbyId": l.id, "userName": name},
		}})
	}
	l.mu.Unlock()
	l.flush(out)
	if finished && l.onFinished != nil {
		l.onFinished(l, nil)
	}
	return true
}

func (l *Lobby) HasPlayer(playerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seatOf(playerID) >= 0
}

func (l *Lobby) PlayerIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playerIDsLocked()
}

func (l *Lobby) PlayerNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, len(l.players))
	for i, p := range l.players {
		names[i] = p.Name
	}
	return names
}

func (l *Lobby) PlayerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.players)
}

func (l *Lobby) MaxPlayers() int {
	return l.cfg.Seats
}

func (l *Lobby) Player(playerID string) (*Player, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.seatOf(playerID); i >= 0 {
		return l.players[i], true
	}
	return nil, false
}

// TableSnapshot exposes the live plays for the read-only status API.
func (l *Lobby) TableSnapshot() table.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tbl.Snapshot()
}

func (l *Lobby) seatOf(playerID string) int {
	for i, p := range l.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (l *Lobby) playerIDsLocked() []string {
	ids := make([]string, len(l.players))
	for i, p := range l.players {
		ids[i] = p.ID
	}
	return ids
}

func (l *Lobby) cardCountsLocked() outbound {
	counts := make(map[string]int, len(l.players))
	for _, p := range l.players {
		counts[p.Name] = len(p.hand)
	}
	return outbound{msg: ws.OutgoingMessage{
		Event: ws.EventCardCount,
		Data:  map[string]any{"lobbyId": l.id, "counts": counts},
	}}
}

func (l *Lobby) bidTurnMsgLocked() outbound {
	actor := l.players[l.bidTurn]
	return outbound{msg: ws.OutgoingMessage{
		Event: ws.EventBidTurn,
		Data: map[string]any{
			"lobbyId":    l.id,
			"userName":   actor.Name,
			"currentBid": l.highBid,
		},
	}}
}

// flush pushes queued notifications after the lock is gone. Fire and forget:
// a dead client just misses the message.
func (l *Lobby) flush(out []outbound) {
	if len(out) == 0 {
		return
	}
	ids := l.PlayerIDs()
	for _, o := range out {
		if o.to != "" {
			l.hub.SendToPlayer(o.to, o.msg)
			continue
		}
		l.hub.BroadcastToPlayers(ids, o.msg)
	}
}
