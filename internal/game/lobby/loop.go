package lobby

import (
	"time"

	ws "doudizhu/internal/websocket"
)

// runLoop is the per-lobby timer goroutine. It lives for the lobby's whole
// lifetime, drives one countdown per turn (bidding and playing alike) and
// auto-passes anyone who lets the countdown run out. Cancellation is a flag
// polled once per tick, so the worst-case reaction to an action is one tick.
func (l *Lobby) runLoop() {
	for {
		l.mu.Lock()
		if l.state == Finished || len(l.players) == 0 {
			l.mu.Unlock()
			return
		}

		var actorID string
		var ticks int
		var out []outbound
		phase := l.state
		switch phase {
		case Bidding:
			actorID = l.players[l.bidTurn].ID
			ticks = l.cfg.MoveTicks
			out = append(out, l.bidTurnMsgLocked())
		case Playing:
			// A stale table from a round everyone else passed out of gets
			// cleared before the leader's fresh turn.
			if l.roundWonLocked() {
				l.tbl.ClearAll()
			}
			actor := l.players[l.turn]
			actorID = actor.ID
			if l.canPlayAnythingLocked(actor) {
				ticks = l.cfg.MoveTicks
			} else {
				ticks = l.cfg.ShortTicks
			}
		default:
			// still waiting for seats; nothing to time yet
			l.mu.Unlock()
			time.Sleep(l.cfg.TickInterval)
			continue
		}
		l.cancelMove = false
		l.mu.Unlock()
		l.flush(out)

		acted := l.countdown(actorID, ticks)

		l.mu.Lock()
		if l.state == Finished || len(l.players) == 0 {
			l.mu.Unlock()
			return
		}
		var after []outbound
		if !acted {
			after = l.expireTurnLocked(phase, actorID)
		}
		l.mu.Unlock()
		l.flush(after)
	}
}

// expireTurnLocked applies the auto-pass for a run-down countdown. An action
// that landed between the countdown's last poll and this point left the
// cancellation flag set; that action already won the turn, so the expiry is
// dropped instead of wiping its effects.
func (l *Lobby) expireTurnLocked(phase State, actorID string) []outbound {
	if l.cancelMove {
		l.cancelMove = false
		return nil
	}
	switch phase {
	case Bidding:
		return l.bidPassLocked(actorID)
	case Playing:
		return l.passLocked(actorID)
	}
	return nil
}

// countdown emits one tick notification per interval until the actor acts,
// the game ends, or time runs out. Returns whether the actor acted.
func (l *Lobby) countdown(actorID string, ticks int) bool {
	for tick := 1; tick <= ticks; tick++ {
		l.mu.Lock()
		if l.state == Finished || len(l.players) == 0 {
			l.mu.Unlock()
			return true
		}
		if l.cancelMove {
			l.cancelMove = false
			l.mu.Unlock()
			return true
		}
		name := ""
		if i := l.seatOf(actorID); i >= 0 {
			name = l.players[i].Name
		}
		l.mu.Unlock()

		l.flush([]outbound{{msg: ws.OutgoingMessage{
			Event: ws.EventTurn,
			Data: map[string]any{
				"lobbyId":  l.id,
				"userName": name,
				"time":     tick,
				"maxTime":  ticks,
			},
		}}})
		time.Sleep(l.cfg.TickInterval)
	}
	return false
}

// advanceTurnLocked moves to the next seat. If the actor left mid-turn the
// index already points at the right seat.
func (l *Lobby) advanceTurnLocked(actorID string) {
	if len(l.players) == 0 {
		return
	}
	if i := l.seatOf(actorID); i >= 0 {
		l.turn = i + 1
	}
	if l.turn >= len(l.players) {
		l.turn = 0
	}
}

// roundWonLocked reports whether no seat except the active one still has a
// live play, meaning the round is over and the table owes the leader a
// clean slate.
func (l *Lobby) roundWonLocked() bool {
	if l.tbl.LiveCount() == 0 {
		return false
	}
	active := l.players[l.turn].ID
	for _, p := range l.players {
		if p.ID != active && l.tbl.HasPlay(p.ID) {
			return false
		}
	}
	return true
}
