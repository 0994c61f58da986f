package websocket

type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Inbound events the game layer understands.
const (
	EventJoin       = "join"
	EventLeave      = "leave"
	EventPlayCards  = "play_cards"
	EventPass       = "pass"
	EventRaiseBid   = "raise_bid"
	EventCanPlay    = "can_play"
	EventSuggest    = "suggest"
	EventEmote      = "emote"
	EventChangeSkin = "change_skin"
)

// Outbound events pushed to clients.
const (
	EventJoined      = "joined"
	EventPlayerJoin  = "player_join"
	EventPlayerLeave = "player_leave"
	EventDeal        = "deal"
	EventCardCount   = "card_count"
	EventTurn        = "turn"
	EventBidTurn     = "bid_turn"
	EventBidRaised   = "bid_raised"
	EventLandlord    = "landlord"
	EventCardsPlayed = "cards_played"
	EventPlayResult  = "play_result"
	EventPlayerPass  = "player_pass"
	EventCanPlayAck  = "can_play_ack"
	EventSuggestion  = "suggestion"
	EventGameState   = "game_state"
	EventEmoteShown  = "emote_shown"
	EventSkinChanged = "skin_changed"
)
