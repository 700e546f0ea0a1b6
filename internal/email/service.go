package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-api/internal/config"
)

type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// sender is the part of gomail.Dialer the SMTP service needs
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPService struct {
	dialer sender
	from   string
}

// NewService returns an SMTP sender, or a logging no-op when no SMTP host is configured
func NewService(cfg config.SMTPConfig, logger zerolog.Logger) Service {
	if !cfg.Enabled() {
		return &NoopService{logger: logger}
	}
	return &SMTPService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPService) SendWelcome(ctx context.Context, to, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(welcomeMessage(s.from, to, name)); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func welcomeMessage(from, to, name string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to the clinic")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s,\n\nYour clinic account has been created.\n", name))
	return m
}

// NoopService only logs what would have been sent
type NoopService struct {
	logger zerolog.Logger
}

func (s *NoopService) SendWelcome(ctx context.Context, to, name string) error {
	s.logger.Debug().Str("to", to).Str("name", name).Msg("SMTP disabled, welcome email skipped")
	return nil
}
