package websocket

import (
	"sync"

	"doudizhu/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	SendToPlayer(id string, msg OutgoingMessage)
	ClientByID(id string) (*Client, bool)
	Close()
}

type Hub struct {
	clients      map[string]*Client // player id -> client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan broadcastReq
	sendOne      chan sendReq
	incoming     chan IncomingMessage
	OnIncoming   func(IncomingMessage)
	OnDisconnect func(playerID string)
	quit         chan struct{}
	mu           sync.RWMutex
}

type broadcastReq struct {
	IDs     []string
	Message OutgoingMessage
}

type sendReq struct {
	ID      string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Info.Println("Hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			utils.Info.Printf("Hub.register -> %s (connections: %d)", c.ID, len(h.clients))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			_, known := h.clients[c.ID]
			if known {
				delete(h.clients, c.ID)
				utils.Info.Printf("Hub.unregister -> %s (connections: %d)", c.ID, len(h.clients))
				close(c.Send)
			}
			h.mu.Unlock()
			if known && h.OnDisconnect != nil {
				h.OnDisconnect(c.ID)
			}

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, id := range req.IDs {
				if client, ok := h.clients[id]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// slow consumer, drop rather than stall the hub
					}
				}
			}
			h.mu.RUnlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			if client, ok := h.clients[req.ID]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}
			h.mu.RUnlock()

		case req := <-h.incoming:
			// hand the player message to the game layer
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.Send)
			}
			h.clients = make(map[string]*Client)
			h.mu.Unlock()
			return
		}
	}
}

// BroadcastToPlayers pushes a message to every listed player.
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{IDs: ids, Message: msg}
}

// SendToPlayer pushes a message to one player, dropping it if the player is
// gone or backed up.
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	h.sendOne <- sendReq{ID: id, Message: msg}
}

func (h *Hub) ClientByID(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

func (h *Hub) Close() {
	close(h.quit)
}
