package lobby

import (
	"doudizhu/internal/game/card"
	"doudizhu/internal/game/combo"
	"doudizhu/internal/utils"
	ws "doudizhu/internal/websocket"
)

// SubmitPlay validates and applies a play. A rejected play only ever answers
// the submitting player; nobody else hears about it.
func (l *Lobby) SubmitPlay(playerID string, cards []card.Card) bool {
	l.mu.Lock()
	accepted, out := l.playLocked(playerID, cards)
	finished := l.state == Finished
	l.mu.Unlock()
	l.flush(out)
	if finished && l.onFinished != nil {
		l.onFinished(l, l.PlayerIDs())
	}
	return accepted
}

func (l *Lobby) playLocked(playerID string, cards []card.Card) (bool, []outbound) {
	reject := func() (bool, []outbound) {
		return false, []outbound{{to: playerID, msg: ws.OutgoingMessage{
			Event: ws.EventPlayResult,
			Data:  map[string]any{"lobbyId": l.id, "used": false},
		}}}
	}

	idx := l.seatOf(playerID)
	if idx < 0 || l.state != Playing || idx != l.turn {
		return reject()
	}
	p := l.players[idx]
	if !p.holds(cards) {
		return reject()
	}
	c, ok := l.tbl.CanAccept(playerID, cards)
	if !ok {
		return reject()
	}

	l.tbl.RecordPlay(playerID, c)
	p.removeCards(cards)
	l.cancelMove = true

	out := []outbound{
		{to: playerID, msg: ws.OutgoingMessage{
			Event: ws.EventPlayResult,
			Data: map[string]any{
				"lobbyId":    l.id,
				"used":       true,
				"cards":      c.Cards,
				"kind":       c.Kind.String(),
				"cardsCount": len(p.hand),
			},
		}},
		{msg: ws.OutgoingMessage{
			Event: ws.EventCardsPlayed,
			Data: map[string]any{
				"lobbyId":    l.id,
				"userName":   p.Name,
				"cards":      c.Cards,
				"kind":       c.Kind.String(),
				"cardsCount": len(p.hand),
			},
		}},
	}

	if len(p.hand) == 0 {
		out = append(out, l.finishLocked(p)...)
	} else {
		l.advanceTurnLocked(playerID)
	}
	return true, out
}

// SubmitPass clears only the passer's own table entry; the full table clears
// once every non-active seat shows no live play (see roundWonLocked).
func (l *Lobby) SubmitPass(playerID string) {
	l.mu.Lock()
	if l.state == Bidding {
		out := l.bidActionLocked(playerID, false)
		l.mu.Unlock()
		l.flush(out)
		return
	}
	if l.state != Playing || l.seatOf(playerID) < 0 {
		l.mu.Unlock()
		return
	}
	out := l.passLocked(playerID)
	l.mu.Unlock()
	l.flush(out)
}

func (l *Lobby) passLocked(playerID string) []outbound {
	idx := l.seatOf(playerID)
	if idx < 0 {
		return nil
	}
	if idx == l.turn {
		l.cancelMove = true
		l.advanceTurnLocked(playerID)
	}
	l.tbl.ClearPlayer(playerID)
	return []outbound{{msg: ws.OutgoingMessage{
		Event: ws.EventPlayerPass,
		Data:  map[string]any{"lobbyId": l.id, "userName": l.players[idx].Name},
	}}}
}

// SubmitBidRaise raises the bid by one increment up to the cap. Off-turn or
// out-of-phase raises are dropped.
func (l *Lobby) SubmitBidRaise(playerID string) {
	l.mu.Lock()
	out := l.bidActionLocked(playerID, true)
	l.mu.Unlock()
	l.flush(out)
}

func (l *Lobby) bidActionLocked(playerID string, raise bool) []outbound {
	if l.state != Bidding {
		return nil
	}
	idx := l.seatOf(playerID)
	if idx < 0 || idx != l.bidTurn {
		return nil
	}
	if raise {
		if l.highBid >= l.cfg.BidCap {
			return nil
		}
		return l.bidRaiseLocked(idx)
	}
	return l.bidPassLocked(playerID)
}

func (l *Lobby) bidRaiseLocked(idx int) []outbound {
	p := l.players[idx]
	l.highBid++
	p.bid = l.highBid
	l.bidLeader = idx
	l.bidPasses = 0
	l.cancelMove = true
	l.bidTurn = (l.bidTurn + 1) % len(l.players)
	utils.Info.Printf("lobby %s: %s raised the bid to %d", l.id, p.Name, l.highBid)
	return []outbound{{msg: ws.OutgoingMessage{
		Event: ws.EventBidRaised,
		Data: map[string]any{
			"lobbyId":    l.id,
			"userName":   p.Name,
			"currentBid": l.highBid,
		},
	}}}
}

// bidPassLocked records a bidding pass. The second consecutive pass ends
// bidding: the leader, or seat 0 when nobody ever raised, becomes landlord.
func (l *Lobby) bidPassLocked(playerID string) []outbound {
	idx := l.seatOf(playerID)
	if idx < 0 || l.state != Bidding {
		return nil
	}
	l.bidPasses++
	l.cancelMove = true
	if l.bidPasses >= 2 {
		return l.endBiddingLocked()
	}
	l.bidTurn = (l.bidTurn + 1) % len(l.players)
	return nil
}

func (l *Lobby) endBiddingLocked() []outbound {
	leader := l.bidLeader
	if leader < 0 || leader >= len(l.players) {
		leader = 0
	}
	landlord := l.players[leader]
	landlord.isLandlord = true

	reserve := l.deck.Draw(l.cfg.ReserveSize, l.cfg.PairBias)
	landlord.addCards(reserve)

	l.state = Playing
	l.turn = leader
	utils.Info.Printf("lobby %s: %s is the landlord (bid %d)", l.id, landlord.Name, l.highBid)

	return []outbound{
		{to: landlord.ID, msg: ws.OutgoingMessage{
			Event: ws.EventDeal,
			Data:  map[string]any{"lobbyId": l.id, "cards": reserve},
		}},
		{msg: ws.OutgoingMessage{
			Event: ws.EventLandlord,
			Data: map[string]any{
				"lobbyId":  l.id,
				"userName": landlord.Name,
				"bid":      l.highBid,
			},
		}},
		l.cardCountsLocked(),
	}
}

// finishLocked ends the game the instant a hand empties. Outcomes oppose the
// landlord to the two farmers: the landlord wins alone or loses to both.
// Without a landlord (simple rules) only the emptied hand wins.
func (l *Lobby) finishLocked(winner *Player) []outbound {
	l.state = Finished
	hasLandlord := false
	for _, p := range l.players {
		if p.isLandlord {
			hasLandlord = true
			break
		}
	}

	out := make([]outbound, 0, len(l.players))
	for _, p := range l.players {
		win := p == winner
		if hasLandlord {
			win = p.isLandlord == winner.isLandlord
		}
		out = append(out, outbound{to: p.ID, msg: ws.OutgoingMessage{
			Event: ws.EventGameState,
			Data: map[string]any{
				"lobbyId":  l.id,
				"userName": winner.Name,
				"win":      win,
			},
		}})
	}
	utils.Info.Printf("lobby %s finished, %s emptied their hand", l.id, winner.Name)
	return out
}

// CanPlay answers the pre-flight "would these cards be accepted" query
// without mutating anything.
func (l *Lobby) CanPlay(playerID string, cards []card.Card) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.seatOf(playerID)
	if idx < 0 || l.state != Playing {
		return false
	}
	if !l.players[idx].holds(cards) {
		return false
	}
	_, ok := l.tbl.CanAccept(playerID, cards)
	return ok
}

// canPlayAnythingLocked decides between the long and short countdowns: does
// any combination in the hand beat the current table?
func (l *Lobby) canPlayAnythingLocked(p *Player) bool {
	for _, c := range combo.EnumerateAll(p.hand, l.rules) {
		if _, ok := l.tbl.CanAccept(p.ID, c.Cards); ok {
			return true
		}
	}
	return false
}

// ChangeSkin swaps the player's board skin and tells the lobby.
func (l *Lobby) ChangeSkin(playerID string, skin int) {
	l.mu.Lock()
	idx := l.seatOf(playerID)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	p := l.players[idx]
	p.Skin = skin
	name := p.Name
	l.mu.Unlock()
	l.flush([]outbound{{msg: ws.OutgoingMessage{
		Event: ws.EventSkinChanged,
		Data:  map[string]any{"lobbyId": l.id, "userName": name, "skin": skin},
	}}})
}

// ShowEmote relays an emote to the table.
func (l *Lobby) ShowEmote(playerID string, emote int) {
	l.mu.Lock()
	idx := l.seatOf(playerID)
	if idx < 0 {
		l.mu.Unlock()
		return
	}
	name := l.players[idx].Name
	l.mu.Unlock()
	l.flush([]outbound{{msg: ws.OutgoingMessage{
		Event: ws.EventEmoteShown,
		Data:  map[string]any{"lobbyId": l.id, "userName": name, "emote": emote},
	}}})
}
