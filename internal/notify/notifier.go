// Package notify renders and delivers the application's emails. The sweeps
// depend only on the Notifier interface; delivery goes through Resend in
// production and a mock in tests.
package notify

import "context"

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers an email. Errors are surfaced to the caller, which
// decides whether the triggering state change still commits.
type Notifier interface {
	Send(ctx context.Context, email Email) error
}
