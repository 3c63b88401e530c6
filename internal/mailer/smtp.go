package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/scriba-server/internal/model"
)

// sender is the subset of *mail.Client used by SMTPMailer.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

var _ sender = (*mail.Client)(nil)

var _ model.Mailer = (*SMTPMailer)(nil)

// Options contains SMTP connection parameters.
type Options struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	RequireTLS bool
}

// SMTPMailer delivers HTML emails over SMTP.
type SMTPMailer struct {
	client sender
	from   string
}

// NewSMTPMailer creates SMTPMailer backed by a go-mail client.
func NewSMTPMailer(opts Options) (*SMTPMailer, error) {
	policy := mail.TLSOpportunistic
	if opts.RequireTLS {
		policy = mail.TLSMandatory
	}

	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTLSPolicy(policy),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPMailer(client, opts.From), nil
}

func newSMTPMailer(client sender, from string) *SMTPMailer {
	return &SMTPMailer{
		client: client,
		from:   from,
	}
}

// Send composes a single HTML message and delivers it in one SMTP session.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, bodyHTML string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, bodyHTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
