package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portfolio/app/config"
)

// ErrRejected is returned when the email service answers with a non-2xx
// status.
var ErrRejected = errors.New("email service rejected the request")

// Sender delivers templated emails.
type Sender interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

// EmailJS sends emails through the EmailJS REST API.
type EmailJS struct {
	endpoint  string
	serviceID string
	publicKey string
	client    *http.Client
	logger    *zap.Logger
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJS builds a client from the email section of the config.
func NewEmailJS(cfg config.EmailConfig, logger *zap.Logger) *EmailJS {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EmailJS{
		endpoint:  cfg.Endpoint,
		serviceID: cfg.ServiceID,
		publicKey: cfg.PublicKey,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.Named("mailer"),
	}
}

// Send posts one email. Failures are returned as is, never retried.
func (e *EmailJS) Send(ctx context.Context, templateID string, params map[string]string) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     templateID,
		UserID:         e.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("Email send failed", zap.String("template", templateID), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.logger.Warn("Email rejected",
			zap.String("template", templateID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("detail", detail))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}

	e.logger.Info("Email sent", zap.String("template", templateID))
	return nil
}
