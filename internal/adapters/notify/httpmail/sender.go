package httpmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("mail api not configured")

// Sender entrega los mensajes de contacto vía una API de templates de email
// (estilo EmailJS): POST con template_params y el template resuelve el cuerpo.
type Sender struct {
	http       *httpclient.Client
	apiKey     string
	templateID string
}

func New(cfg config.MailAPIConfig) (*Sender, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.NewWithBaseURL(cfg.BaseURL, 0)
	if err != nil {
		return nil, err
	}
	return &Sender{
		http:       c,
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
	}, nil
}

type sendRequest struct {
	TemplateID     string            `json:"template_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *Sender) Send(ctx context.Context, templateID string, fields map[string]string) error {
	if templateID == "" {
		templateID = s.templateID
	}

	headers := map[string]string{}
	if s.apiKey != "" {
		headers["Authorization"] = "Bearer " + s.apiKey
	}

	req := sendRequest{
		TemplateID:     templateID,
		TemplateParams: fields,
	}
	if err := s.http.DoJSON(ctx, http.MethodPost, "/api/v1/email/send", headers, req, nil); err != nil {
		return fmt.Errorf("mail api send: %w", err)
	}
	return nil
}
