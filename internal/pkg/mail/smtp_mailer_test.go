package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treido/treido-go/internal/pkg/env"
)

func TestNewReturnsNopWithoutHost(t *testing.T) {
	_, ok := New(env.SMTPConfig{}).(Nop)
	assert.True(t, ok)
	assert.NoError(t, Nop{}.Send(context.Background(), "a@b.c", "s", "b"))
}

func TestSMTPMailerSend(t *testing.T) {
	m := NewSMTPMailer(env.SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", Sender: "shop@treido.eu"})

	var got *email.Email
	var gotAddr string
	var gotAuth smtp.Auth
	m.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		got, gotAddr, gotAuth = e, addr, auth
		return nil
	}

	require.NoError(t, m.Send(context.Background(), " seller@example.com ", "Order cancelled", "body"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "shop@treido.eu", got.From)
	assert.Equal(t, []string{"seller@example.com"}, got.To)
	assert.Equal(t, "Order cancelled", got.Subject)
	assert.Equal(t, []byte("body"), got.Text)
}

func TestSMTPMailerDefaultsSenderAndSkipsAuth(t *testing.T) {
	m := NewSMTPMailer(env.SMTPConfig{Host: "localhost", Port: "1025"})
	var gotAuth smtp.Auth = smtp.PlainAuth("", "x", "y", "z")
	var from string
	m.send = func(e *email.Email, _ string, auth smtp.Auth) error {
		gotAuth, from = auth, e.From
		return nil
	}

	require.NoError(t, m.Send(context.Background(), "a@b.c", "s", "b"))
	assert.Nil(t, gotAuth)
	assert.Equal(t, "no-reply@localhost", from)
}

func TestSMTPMailerErrors(t *testing.T) {
	m := NewSMTPMailer(env.SMTPConfig{Host: "localhost", Port: "1025", Sender: "x@y.z"})
	sendErr := errors.New("connection refused")
	m.send = func(*email.Email, string, smtp.Auth) error { return sendErr }

	assert.ErrorIs(t, m.Send(context.Background(), "", "s", "b"), ErrInvalidRecipient)
	assert.ErrorIs(t, m.Send(context.Background(), "a@b.c", "s", "b"), sendErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, "a@b.c", "s", "b"), context.Canceled)
}
