package email

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-api/internal/config"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNewServiceWithoutHostIsNoop(t *testing.T) {
	svc := NewService(config.SMTPConfig{}, zerolog.Nop())
	require.IsType(t, &NoopService{}, svc)
	assert.NoError(t, svc.SendWelcome(context.Background(), "a@clinic.test", "ada"))
}

func TestSendWelcome(t *testing.T) {
	fake := &fakeSender{}
	svc := &SMTPService{dialer: fake, from: "no-reply@clinic.test"}

	require.NoError(t, svc.SendWelcome(context.Background(), "grace@clinic.test", "grace"))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"grace@clinic.test"}, fake.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"no-reply@clinic.test"}, fake.sent[0].GetHeader("From"))

	fake.err = errors.New("connection refused")
	assert.ErrorContains(t, svc.SendWelcome(context.Background(), "grace@clinic.test", "grace"), "welcome email")
}
