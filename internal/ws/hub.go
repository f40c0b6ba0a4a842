package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"Showcase/entity"
	"Showcase/internal/lib/sl"
)

const (
	EventTurn     = "turn"
	EventLanguage = "language"
	EventError    = "error"
)

// ClientMessageHandler handles incoming chat messages from page clients.
type ClientMessageHandler interface {
	Ask(ctx context.Context, sessionID, requested, text string) (*entity.Exchange, error)
	SetLanguage(ctx context.Context, sessionID string, lang entity.Language) (entity.Language, error)
}

// Event represents a WebSocket event sent to page clients.
type Event struct {
	Type string      `json:"type"` // "turn", "language", "error"
	Data interface{} `json:"data"`
}

type envelope struct {
	sessionID string
	event     *Event
}

// Hub maintains the set of active WebSocket clients and delivers events to
// the connections of one session.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	handler    ClientMessageHandler
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// SetHandler sets the handler for incoming client messages.
func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// Run starts the hub's event loop until ctx is done. Should be called in a
// goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case env := <-h.broadcast:
			data, err := json.Marshal(env.event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if client.sessionID != env.sessionID {
					continue
				}
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Clients reports the number of open connections of a session.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for client := range h.clients {
		if client.sessionID == sessionID {
			n++
		}
	}
	return n
}

func (h *Hub) publish(sessionID string, event *Event) {
	select {
	case h.broadcast <- envelope{sessionID: sessionID, event: event}:
	default:
		h.log.Warn("broadcast queue full, event dropped", slog.String("type", event.Type))
	}
}

// PublishTurns sends each turn as a turn event to the session's clients.
func (h *Hub) PublishTurns(sessionID string, turns ...entity.ChatTurn) {
	for _, turn := range turns {
		h.publish(sessionID, &Event{Type: EventTurn, Data: turn})
	}
}

// PublishLanguage tells the session's clients the language changed.
func (h *Hub) PublishLanguage(sessionID string, lang entity.Language) {
	h.publish(sessionID, &Event{
		Type: EventLanguage,
		Data: map[string]string{
			"lang":       string(lang),
			"speech_tag": lang.SpeechTag(),
		},
	})
}

// clientEvent represents an incoming WebSocket message from a page client.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message from a client.
// Answers reach the client through the session broadcast, errors directly.
func (h *Hub) HandleClientMessage(client *Client, raw []byte) {
	if h.handler == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.log.Warn("failed to parse client ws message", sl.Err(err))
		return
	}

	ctx := context.Background()
	switch event.Type {
	case "ask":
		var data struct {
			Product string `json:"product"`
			Text    string `json:"text"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse ask data", sl.Err(err))
			return
		}
		data.Text = strings.TrimSpace(data.Text)
		if data.Text == "" {
			return
		}
		if data.Product == "" {
			data.Product = client.product
		}
		if _, err := h.handler.Ask(ctx, client.sessionID, data.Product, data.Text); err != nil {
			h.log.Error("failed to handle ask",
				sl.Secret("session", client.sessionID),
				sl.Err(err),
			)
			client.reply(&Event{Type: EventError, Data: map[string]string{"message": err.Error()}})
		}

	case "language":
		var data struct {
			Lang string `json:"lang"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse language data", sl.Err(err))
			return
		}
		if _, err := h.handler.SetLanguage(ctx, client.sessionID, entity.Language(data.Lang)); err != nil {
			h.log.Error("failed to handle language", sl.Err(err))
			client.reply(&Event{Type: EventError, Data: map[string]string{"message": err.Error()}})
		}
	}
}
