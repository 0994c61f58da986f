package manager

import (
	"context"
	"encoding/json"

	"doudizhu/internal/game/card"
	"doudizhu/internal/game/combo"
	"doudizhu/internal/game/lobby"
	"doudizhu/internal/utils"
	ws "doudizhu/internal/websocket"
)

// GameManager is the single entry point for player messages coming off the
// hub: it resolves the player's lobby through the directory and dispatches on
// the event name, the same table-of-handlers shape the wire protocol always
// had. Unknown events and unseated players are dropped silently.
type GameManager struct {
	dir *lobby.Directory
	hub ws.HubInterface
}

func NewGameManager(dir *lobby.Directory, hub ws.HubInterface) *GameManager {
	return &GameManager{dir: dir, hub: hub}
}

// joinPayload is what a join event carries.
type joinPayload struct {
	UserName string `json:"userName"`
	Rules    string `json:"rules"`
}

type cardsPayload struct {
	Cards []card.Card `json:"cards"`
}

type emotePayload struct {
	Emote int `json:"emote"`
}

type skinPayload struct {
	Skin int `json:"skin"`
}

// HandlePlayerMessage is wired to Hub.OnIncoming.
func (m *GameManager) HandlePlayerMessage(msg ws.IncomingMessage) {
	switch msg.Event {
	case ws.EventJoin:
		m.handleJoin(msg)
	case ws.EventLeave:
		m.HandleDisconnect(msg.From)
	case ws.EventPlayCards:
		m.handlePlay(msg)
	case ws.EventPass:
		if l, ok := m.dir.Lookup(msg.From); ok {
			l.SubmitPass(msg.From)
		}
	case ws.EventRaiseBid:
		if l, ok := m.dir.Lookup(msg.From); ok {
			l.SubmitBidRaise(msg.From)
		}
	case ws.EventCanPlay:
		m.handleCanPlay(msg)
	case ws.EventSuggest:
		m.handleSuggest(msg)
	case ws.EventEmote:
		var p emotePayload
		if l, ok := m.dir.Lookup(msg.From); ok && decode(msg.Data, &p) {
			l.ShowEmote(msg.From, p.Emote)
		}
	case ws.EventChangeSkin:
		var p skinPayload
		if l, ok := m.dir.Lookup(msg.From); ok && decode(msg.Data, &p) {
			l.ChangeSkin(msg.From, p.Skin)
		}
	}
}

// HandleDisconnect is wired to Hub.OnDisconnect; a vanished connection is
// just a leave.
func (m *GameManager) HandleDisconnect(playerID string) {
	m.dir.Leave(context.Background(), playerID)
}

func (m *GameManager) handleJoin(msg ws.IncomingMessage) {
	var p joinPayload
	if !decode(msg.Data, &p) {
		return
	}
	name := p.UserName
	if name == "" {
		name = msg.From
	}
	l, err := m.dir.Join(context.Background(), msg.From, name, combo.ParseRuleSet(p.Rules))
	if err != nil {
		utils.Error.Printf("join failed for %s: %v", msg.From, err)
		return
	}
	m.hub.SendToPlayer(msg.From, ws.OutgoingMessage{
		Event: ws.EventJoined,
		Data: map[string]any{
			"lobbyId":    l.ID(),
			"rules":      l.Rules().String(),
			"players":    l.PlayerCount(),
			"maxPlayers": l.MaxPlayers(),
			"names":      l.PlayerNames(),
		},
	})
}

func (m *GameManager) handlePlay(msg ws.IncomingMessage) {
	var p cardsPayload
	l, ok := m.dir.Lookup(msg.From)
	if !ok || !decode(msg.Data, &p) {
		return
	}
	l.SubmitPlay(msg.From, p.Cards)
}

func (m *GameManager) handleCanPlay(msg ws.IncomingMessage) {
	var p cardsPayload
	l, ok := m.dir.Lookup(msg.From)
	if !ok || !decode(msg.Data, &p) {
		return
	}
	m.hub.SendToPlayer(msg.From, ws.OutgoingMessage{
		Event: ws.EventCanPlayAck,
		Data: map[string]any{
			"lobbyId": l.ID(),
			"can":     l.CanPlay(msg.From, p.Cards),
		},
	})
}

func (m *GameManager) handleSuggest(msg ws.IncomingMessage) {
	l, ok := m.dir.Lookup(msg.From)
	if !ok {
		return
	}
	cards := l.Suggest(msg.From)
	m.hub.SendToPlayer(msg.From, ws.OutgoingMessage{
		Event: ws.EventSuggestion,
		Data: map[string]any{
			"lobbyId": l.ID(),
			"cards":   cards,
		},
	})
}

// decode round-trips the loosely typed message data into a concrete payload.
func decode(data interface{}, out interface{}) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
