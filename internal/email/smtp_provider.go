package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider creates an SMTP provider.
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Send delivers the message. The SMTP dial and transfer run in a separate
// goroutine so the caller's context deadline is honored.
func (p *SMTPProvider) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.config.FromEmail)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- p.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send email: %w", ctx.Err())
	}
}

// SendPasswordReset delivers the password-reset instructions.
func (p *SMTPProvider) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	body := fmt.Sprintf(
		"Forgot your Password? Submit a PATCH request with your new password and password confirm to: %s.\n"+
			"If you didn't forget your password, please ignore this email!",
		resetURL,
	)
	return p.Send(ctx, &Message{
		To:      []string{to},
		Subject: "Your password reset Token. (Valid for 10 min)",
		Body:    body,
	})
}

func (p *SMTPProvider) Close() error {
	return nil
}
