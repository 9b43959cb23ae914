package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mypetlife-backend/internal/platform/logger"
	"mypetlife-backend/internal/ports/notify"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDelivery     = errors.New("delivery failed")
)

// Service valida el mensaje del formulario y lo entrega por el canal de
// salida configurado (SMTP o API de plantillas). Periférico al core.
type Service struct {
	sender     notify.Sender
	templateID string
	log        logger.Logger
}

func NewService(sender notify.Sender, templateID string, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{
		sender:     sender,
		templateID: templateID,
		log:        log,
	}
}

type Message struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (s *Service) Submit(ctx context.Context, m Message) error {
	name := strings.TrimSpace(m.Name)
	email := strings.TrimSpace(m.Email)
	body := strings.TrimSpace(m.Message)

	if name == "" || body == "" {
		return ErrInvalidInput
	}
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidInput
	}

	if s.sender == nil {
		s.log.Warn("contact delivery skipped: no sender configured", nil)
		return fmt.Errorf("%w: no sender configured", ErrDelivery)
	}

	err := s.sender.Send(ctx, s.templateID, map[string]string{
		"name":    name,
		"email":   email,
		"subject": strings.TrimSpace(m.Subject),
		"message": body,
	})
	if err != nil {
		s.log.Error("contact delivery failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}
