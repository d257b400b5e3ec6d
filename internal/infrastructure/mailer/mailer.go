package mailer

import "context"

// Mailer delivers lifecycle notifications. Delivery failures are logged
// by callers, never surfaced to the triggering request.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Noop is used when no mail backend is configured.
type Noop struct{}

func (Noop) Send(context.Context, []string, string, string) error { return nil }
