package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"teamhealth/internal/config"
	"teamhealth/internal/model"
	"time"

	"go.uber.org/zap"
)

// Mailer sends one transactional email
type Mailer interface {
	Send(ctx context.Context, msg model.MailMessage) error
}

// NewMailer returns an HTTP mail client when an API key is configured,
// otherwise a mailer that only logs.
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.APIKey == "" {
		logger.Warn("MAIL_API_KEY not set, emails will be logged instead of sent")
		return &logMailer{logger: logger}
	}
	return NewMailClient(cfg, logger)
}

// MailClient wraps a transactional mail HTTP API
type MailClient struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMailClient creates a new mail API client
func NewMailClient(cfg config.MailConfig, logger *zap.Logger) *MailClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MailClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailRequest struct {
	From    mailAddress   `json:"from"`
	To      []mailAddress `json:"to"`
	Subject string        `json:"subject"`
	Text    string        `json:"text"`
}

// Send posts one message to the mail API. Failures are returned, never retried.
func (c *MailClient) Send(ctx context.Context, msg model.MailMessage) error {
	payload, err := json.Marshal(mailRequest{
		From:    mailAddress{Email: c.from},
		To:      []mailAddress{{Email: msg.To}},
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("mail API rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", msg.To),
			zap.ByteString("body", body))
		return fmt.Errorf("mail API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.Debug("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, msg model.MailMessage) error {
	m.logger.Info("mail disabled, not sending",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// SendBulk sends messages one by one with a fixed delay between sends.
// Failed sends are collected, not retried. When ctx is cancelled the
// remaining messages are recorded as failures. onSent, if set, is called
// with the index of every message that was delivered.
func SendBulk(ctx context.Context, mailer Mailer, msgs []model.MailMessage, delay time.Duration, onSent func(i int)) model.BulkMailResult {
	result := model.BulkMailResult{Failures: []model.MailFailure{}}
	for i, msg := range msgs {
		if i > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			for _, rest := range msgs[i:] {
				result.Failures = append(result.Failures, model.MailFailure{To: rest.To, Error: err.Error()})
			}
			return result
		}

		result.Attempted++
		if err := mailer.Send(ctx, msg); err != nil {
			result.Failures = append(result.Failures, model.MailFailure{To: msg.To, Error: err.Error()})
			continue
		}
		result.Sent++
		if onSent != nil {
			onSent(i)
		}
	}
	return result
}
