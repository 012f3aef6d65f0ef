/*
Package email - outbound templated mail over the SendGrid v3 JSON API.

Delivery failures surface as domain delivery errors so callers can treat
them as non-fatal: a confirmed engagement write never rolls back because
the mail hop failed.
*/
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"learnhub/config"
	"learnhub/domain/notification"
	"learnhub/domain/shared"
)

// Sender outbound mail boundary
type Sender interface {
	Send(ctx context.Context, req notification.EmailRequest) error
}

// SendGrid request format
type sgEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
type sgPersonalization struct {
	To []sgEmail `json:"to"`
}
type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgEmail             `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

// SendGridSender Sender backed by the SendGrid HTTP API
type SendGridSender struct {
	apiKey      string
	endpoint    string
	senderEmail string
	senderName  string
	client      *http.Client
	templates   *template.Template
}

func NewSendGridSender(cfg config.MailConfig) (*SendGridSender, error) {
	templates, err := template.New("mail").Parse(mailTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &SendGridSender{
		apiKey:      cfg.APIKey,
		endpoint:    cfg.APIEndpoint,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		client:      &http.Client{Timeout: cfg.Timeout},
		templates:   templates,
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, req notification.EmailRequest) error {
	var rendered bytes.Buffer
	if err := s.templates.ExecuteTemplate(&rendered, req.Template, req.Data); err != nil {
		return shared.NewDeliveryError("email", fmt.Errorf("template %q: %w", req.Template, err))
	}

	body := sgRequest{
		Personalizations: []sgPersonalization{
			{To: []sgEmail{{Email: req.To, Name: req.ToName}}},
		},
		From: sgEmail{
			Email: s.senderEmail,
			Name:  s.senderName,
		},
		Subject: req.Subject,
		Content: []sgContent{
			{Type: "text/html", Value: rendered.String()},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return shared.NewDeliveryError("email", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return shared.NewDeliveryError("email", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return shared.NewDeliveryError("email", err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 on success
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return shared.NewDeliveryError("email",
			fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, respBody))
	}

	return nil
}

var _ Sender = (*SendGridSender)(nil)
