package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"teamhealth/internal/config"
	"teamhealth/internal/service"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubRoutesByTopic(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop())
	defer hub.Close()

	a := &Connection{Topic: "assessment:a1", Send: make(chan []byte, 4)}
	b := &Connection{Topic: "assessment:b1", Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast("assessment:a1", "submission_received", map[string]string{"assessmentId": "a1"})

	msg := receive(t, a)
	assert.Equal(t, "submission_received", msg.Type)
	assert.JSONEq(t, `{"assessmentId":"a1"}`, string(msg.Payload))
	assert.Empty(t, b.Send)

	hub.Unregister(a)
	assert.Eventually(t, func() bool { return hub.Subscribers("assessment:a1") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHubCloseReleasesSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop())
	conn := &Connection{Topic: "organization:o1", Send: make(chan []byte, 1)}
	hub.Register(conn)

	hub.Close()
	hub.Close()

	_, open := <-conn.Send
	assert.False(t, open)

	// calls after Close must not block
	hub.Broadcast("organization:o1", "summary_regenerated", nil)
	hub.Unregister(conn)
	late := &Connection{Topic: "organization:o1", Send: make(chan []byte, 1)}
	hub.Register(late)
	_, open = <-late.Send
	assert.False(t, open)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop())
	defer hub.Close()

	slow := &Connection{Topic: "assessment:a1", Send: make(chan []byte, 1)}
	hub.Register(slow)
	hub.Broadcast("assessment:a1", "team_report_updated", 1)
	hub.Broadcast("assessment:a1", "team_report_updated", 2)

	msg := receive(t, slow)
	assert.Equal(t, "1", string(msg.Payload))
}

type memSessions struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (s *memSessions) Set(_ context.Context, id string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = true
	return nil
}

func (s *memSessions) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id], nil
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	return nil
}

func TestHandlerStreamsEvents(t *testing.T) {
	logger := zap.NewNop()
	auth := service.NewAuthService(config.AuthConfig{AdminPassword: "pw", JWTSecret: "secret"}, &memSessions{ids: map[string]bool{}}, logger)
	login, err := auth.Login(context.Background(), "pw")
	require.NoError(t, err)

	hub := NewHub(logger)
	defer hub.Close()

	r := mux.NewRouter()
	h := NewHandler(hub, auth, logger)
	r.HandleFunc("/v1/ws/assessments/{id}", h.AssessmentWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/assessments/a1"

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	client, _, err := websocket.DefaultDialer.Dial(base+"?token="+login.Token, nil)
	require.NoError(t, err)
	defer client.Close()

	topic := service.AssessmentTopic("a1")
	require.Eventually(t, func() bool { return hub.Subscribers(topic) == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(topic, service.EventTeamReportUpdated, map[string]float64{"teamScore": 72.5})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, service.EventTeamReportUpdated, msg.Type)
	assert.JSONEq(t, `{"teamScore":72.5}`, string(msg.Payload))
}
