package email

import "context"

// Provider is the outbound notification capability. Sends are bounded by the
// context deadline: a slow SMTP server surfaces as a delivery failure, it
// never hangs the request.
type Provider interface {
	// Send delivers a single message.
	Send(ctx context.Context, msg *Message) error

	// SendPasswordReset delivers the password-reset instructions carrying
	// the plaintext reset token inside resetURL.
	SendPasswordReset(ctx context.Context, to, resetURL string) error

	// Close releases provider resources.
	Close() error
}
