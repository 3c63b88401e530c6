package model

import "context"

// Mailer delivers HTML messages to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, bodyHTML string) error
}
