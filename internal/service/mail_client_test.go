package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"teamhealth/internal/config"
	"teamhealth/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMailClientSend(t *testing.T) {
	var got mailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.To[0].Email == "bounce@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewMailClient(config.MailConfig{
		APIKey:  "key-123",
		BaseURL: srv.URL + "/",
		From:    "surveys@example.com",
	}, zap.NewNop())

	err := client.Send(context.Background(), model.MailMessage{To: "lead@example.com", Subject: "Hi", Text: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "surveys@example.com", got.From.Email)
	assert.Equal(t, "Hi", got.Subject)

	err = client.Send(context.Background(), model.MailMessage{To: "bounce@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestNewMailerWithoutKeyLogsOnly(t *testing.T) {
	m := NewMailer(config.MailConfig{}, zap.NewNop())
	_, ok := m.(*logMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), model.MailMessage{To: "x@example.com"}))
}

func TestSendBulkCollectsFailures(t *testing.T) {
	mailer := &fakeMailer{fail: map[string]bool{"b@example.com": true}}
	msgs := []model.MailMessage{{To: "a@example.com"}, {To: "b@example.com"}, {To: "c@example.com"}}

	var delivered []int
	result := SendBulk(context.Background(), mailer, msgs, 0, func(i int) { delivered = append(delivered, i) })
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, []model.MailFailure{{To: "b@example.com", Error: "mailbox unavailable"}}, result.Failures)
	assert.Equal(t, []int{0, 2}, delivered)
}

func TestSendBulkWaitsBetweenSends(t *testing.T) {
	mailer := &fakeMailer{fail: map[string]bool{}}
	msgs := []model.MailMessage{{To: "a@example.com"}, {To: "b@example.com"}, {To: "c@example.com"}}

	start := time.Now()
	result := SendBulk(context.Background(), mailer, msgs, 20*time.Millisecond, nil)
	assert.Equal(t, 3, result.Sent)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestSendBulkStopsOnCancel(t *testing.T) {
	mailer := &fakeMailer{fail: map[string]bool{}}
	msgs := []model.MailMessage{{To: "a@example.com"}, {To: "b@example.com"}, {To: "c@example.com"}}

	ctx, cancel := context.WithCancel(context.Background())
	result := SendBulk(ctx, mailer, msgs, time.Hour, func(int) { cancel() })
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "b@example.com", result.Failures[0].To)
	assert.Equal(t, context.Canceled.Error(), result.Failures[0].Error)
}
