package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans dashboard events out to the connections subscribed to a topic.
// Topics are "assessment:<id>" and "organization:<id>".
type Hub struct {
	topics map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once

	logger *zap.Logger
}

// Connection represents a WebSocket subscriber
type Connection struct {
	Topic string
	Send  chan []byte
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	Topic   string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		topics:     make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for topic, conns := range h.topics {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.topics, topic)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.topics[conn.Topic] == nil {
				h.topics[conn.Topic] = make(map[*Connection]struct{})
			}
			h.topics[conn.Topic][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("subscriber connected", zap.String("topic", conn.Topic))

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.topics[conn.Topic]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.topics, conn.Topic)
					}
					h.logger.Debug("subscriber disconnected", zap.String("topic", conn.Topic))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Warn("failed to encode broadcast", zap.String("topic", msg.Topic), zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.topics[msg.Topic] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast queues an event for every subscriber of topic (implements service.Broadcaster)
func (h *Hub) Broadcast(topic string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{Topic: topic, Message: &Message{Type: msgType, Payload: data}}:
	case <-h.done:
	}
}

// Subscribers returns the number of connections on a topic
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close stops the hub and closes every subscriber's send channel
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}
