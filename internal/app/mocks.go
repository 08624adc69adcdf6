package app

import (
	"context"

	"bookstore_backend/internal/email"
	"bookstore_backend/internal/logger"
)

// MockEmailProvider is used for local development when SMTP is not
// configured. It logs instead of sending.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(ctx context.Context, msg *email.Message) error {
	logger.CtxInfo(ctx, "mock email send", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	logger.CtxInfo(ctx, "mock password reset email", "to", to, "reset_url", resetURL)
	return nil
}

func (m *MockEmailProvider) Close() error { return nil }
