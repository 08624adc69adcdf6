package helpers

import (
	"context"
	"errors"
	"sync"

	"bookstore_backend/internal/email"
)

// ResetSend is one recorded password-reset send.
type ResetSend struct {
	To       string
	ResetURL string
}

// RecordingMailer implements email.Provider, recording every send. Set
// FailSends to make it simulate delivery failures.
type RecordingMailer struct {
	mu        sync.Mutex
	FailSends bool
	Messages  []email.Message
	Resets    []ResetSend
}

var _ email.Provider = (*RecordingMailer)(nil)

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

func (m *RecordingMailer) Send(ctx context.Context, msg *email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSends {
		return errors.New("smtp unavailable")
	}
	m.Messages = append(m.Messages, *msg)
	return nil
}

func (m *RecordingMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSends {
		return errors.New("smtp unavailable")
	}
	m.Resets = append(m.Resets, ResetSend{To: to, ResetURL: resetURL})
	return nil
}

func (m *RecordingMailer) Close() error { return nil }

// LastReset returns the most recent password-reset send.
func (m *RecordingMailer) LastReset() (ResetSend, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Resets) == 0 {
		return ResetSend{}, false
	}
	return m.Resets[len(m.Resets)-1], true
}
