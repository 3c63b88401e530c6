package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSMTPMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s := &fakeSender{}
		m := newSMTPMailer(s, "noreply@scriba.test")

		err := m.Send(ctx, "user@example.com", "Subject line", "<p>hello</p>")
		require.NoError(t, err)
		require.Len(t, s.sent, 1)

		msg := s.sent[0]
		assert.Equal(t, []string{"Subject line"}, msg.GetGenHeader(mail.HeaderSubject))
		to := msg.GetToString()
		require.Len(t, to, 1)
		assert.Contains(t, to[0], "user@example.com")
		from := msg.GetFromString()
		require.Len(t, from, 1)
		assert.Contains(t, from[0], "noreply@scriba.test")

		var buf bytes.Buffer
		_, err = msg.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "text/html")
	})

	t.Run("invalid recipient", func(t *testing.T) {
		s := &fakeSender{}
		m := newSMTPMailer(s, "noreply@scriba.test")

		err := m.Send(ctx, "not an address", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid recipient address")
		assert.Empty(t, s.sent)
	})

	t.Run("invalid sender", func(t *testing.T) {
		s := &fakeSender{}
		m := newSMTPMailer(s, "")

		err := m.Send(ctx, "user@example.com", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sender address")
	})

	t.Run("transport failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		m := newSMTPMailer(&fakeSender{err: boom}, "noreply@scriba.test")

		err := m.Send(ctx, "user@example.com", "s", "b")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(Options{Host: "localhost", Port: 2525, From: "noreply@scriba.test"})
	require.NoError(t, err)
	assert.Equal(t, "noreply@scriba.test", m.from)
	assert.NotNil(t, m.client)

	_, err = NewSMTPMailer(Options{Port: 2525})
	assert.Error(t, err)
}
