package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/internal/pkg/env"
)

var ErrInvalidRecipient = errors.New("mail: invalid recipient")

// Mailer sends a plain text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Nop discards every message. It is used when SMTP is not configured.
type Nop struct{}

func (Nop) Send(context.Context, string, string, string) error { return nil }

// SMTPMailer sends emails via SMTP
type SMTPMailer struct {
	cfg  env.SMTPConfig
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

// New returns an SMTP mailer, or Nop when no SMTP host is configured.
func New(cfg env.SMTPConfig) Mailer {
	if !cfg.Enabled() {
		return Nop{}
	}
	return NewSMTPMailer(cfg)
}

func NewSMTPMailer(cfg env.SMTPConfig) *SMTPMailer {
	if cfg.Sender == "" {
		cfg.Sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Warn().Str("sender", cfg.Sender).Msg("SMTP_SENDER not set, using default sender")
	}
	return &SMTPMailer{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	e := email.NewEmail()
	e.From = m.cfg.Sender
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if err := m.send(e, addr, auth); err != nil {
		log.Error().Err(err).Str("to", to).Str("addr", addr).Msg("SMTP send error")
		return err
	}
	log.Debug().Str("to", to).Str("addr", addr).Msg("email sent")
	return nil
}
