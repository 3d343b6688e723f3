package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"obrago/internal/pkg/logger"
)

// ErrNotConfigured is returned when no transport can deliver email.
var ErrNotConfigured = errors.New("email service not configured")

// Message is a single outbound HTML email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers a message and returns the provider id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendMailer posts messages to the Resend HTTP API.
type ResendMailer struct {
	client *resty.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// NewResendMailer builds a client for baseURL. Sends are not retried.
func NewResendMailer(baseURL, apiKey string, timeout time.Duration) *ResendMailer {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)
	return &ResendMailer{client: client}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	var (
		out     resendResponse
		failure resendError
	)
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(resendRequest{From: msg.From, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}).
		SetResult(&out).
		SetError(&failure).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}
	if resp.IsError() {
		if failure.Message != "" {
			return "", fmt.Errorf("resend: %s (%d)", failure.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("resend: unexpected status %d", resp.StatusCode())
	}
	if out.ID == "" {
		return "", errors.New("resend: response without id")
	}
	return out.ID, nil
}

// ConsoleMailer logs messages instead of sending them. Development only.
type ConsoleMailer struct{}

func (ConsoleMailer) Send(ctx context.Context, msg Message) (string, error) {
	id := "console-" + uuid.NewString()
	logger.FromContext(ctx).Info("email not sent (console mailer)",
		zap.String("id", id),
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return id, nil
}
