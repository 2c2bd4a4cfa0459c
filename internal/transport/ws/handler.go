package ws

import (
	"net/http"
	"teamhealth/internal/service"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler serves dashboard WebSocket subscriptions
type Handler struct {
	hub     *Hub
	authSvc *service.AuthService
	logger  *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, logger *zap.Logger) *Handler {
	return &Handler{
		hub:     hub,
		authSvc: authSvc,
		logger:  logger,
	}
}

// AssessmentWS handles GET /v1/ws/assessments/{id}
func (h *Handler) AssessmentWS(w http.ResponseWriter, r *http.Request) {
	h.subscribe(w, r, service.AssessmentTopic(mux.Vars(r)["id"]))
}

// OrganizationWS handles GET /v1/ws/organizations/{id}
func (h *Handler) OrganizationWS(w http.ResponseWriter, r *http.Request) {
	h.subscribe(w, r, service.OrganizationTopic(mux.Vars(r)["id"]))
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request, topic string) {
	// browsers cannot set headers on WebSocket requests
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	if _, err := h.authSvc.ValidateToken(r.Context(), token); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := &Connection{
		Topic: topic,
		Send:  make(chan []byte, 256),
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket closed", zap.String("topic", conn.Topic), zap.Error(err))
			}
			return
		}
		// subscribers only listen; incoming frames keep the connection alive
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
