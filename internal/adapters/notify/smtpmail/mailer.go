package smtpmail

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"mypetlife-backend/internal/config"
)

// Mailer entrega los mensajes del formulario de contacto por SMTP plano
// (mailhog en dev, relay interno en prod). Los fields del template se vuelcan
// como líneas clave: valor en el cuerpo.
type Mailer struct {
	addr string
	from string
	to   string
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		to:   cfg.To,
	}
}

func (m *Mailer) Send(ctx context.Context, templateID string, fields map[string]string) error {
	subject := "MyPetLife contact form"
	if templateID != "" {
		subject = subject + " (" + templateID + ")"
	}

	var b strings.Builder
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, fields[k])
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, m.to, subject, b.String()))

	if err := smtp.SendMail(m.addr, nil, m.from, []string{m.to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
