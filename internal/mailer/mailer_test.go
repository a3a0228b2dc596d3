package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

type recordingSender struct {
	from   string
	to     []string
	body   bytes.Buffer
	closed bool
	err    error
}

func (s *recordingSender) Send(from string, to []string, msg io.WriterTo) error {
	if s.err != nil {
		return s.err
	}
	s.from = from
	s.to = to
	_, err := msg.WriteTo(&s.body)
	return err
}

func (s *recordingSender) Close() error {
	s.closed = true
	return nil
}

func newTestMailer(t *testing.T, sender *recordingSender) *Mailer {
	t.Helper()
	m, err := NewMailer(SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "bot@hbestate.in",
		NotifyEmail: "owner@hbestate.in",
	}, logger.NewNop())
	require.NoError(t, err)
	m.dial = func() (gomail.SendCloser, error) { return sender, nil }
	return m
}

func TestMailer_NotifyNewQuery(t *testing.T) {
	sender := &recordingSender{}
	m := newTestMailer(t, sender)

	err := m.NotifyNewQuery(context.Background(), &domain.Query{
		ID:        "q-1",
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Phone:     "+919876543210",
		Message:   "Is the villa still available?",
		CreatedAt: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "bot@hbestate.in", sender.from)
	assert.Equal(t, []string{"owner@hbestate.in"}, sender.to)
	assert.True(t, sender.closed)
	raw := sender.body.String()
	assert.Contains(t, raw, "Reply-To: asha@example.com")
	assert.Contains(t, raw, "New enquiry from Asha Rao")
	assert.Contains(t, raw, "+919876543210")
}

func TestMailer_SendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("421 try later")}
	m := newTestMailer(t, sender)

	err := m.NotifyNewQuery(context.Background(), &domain.Query{ID: "q-1", Name: "Asha"})
	assert.Error(t, err)
	assert.True(t, sender.closed)
}

func TestMailer_DialFailure(t *testing.T) {
	m := newTestMailer(t, &recordingSender{})
	m.dial = func() (gomail.SendCloser, error) { return nil, errors.New("connection refused") }

	assert.Error(t, m.NotifyNewQuery(context.Background(), &domain.Query{ID: "q-1"}))
}

func TestNewMailer_RequiresSettings(t *testing.T) {
	_, err := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587}, logger.NewNop())
	assert.Error(t, err)
}
