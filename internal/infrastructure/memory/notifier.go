package memory

import (
	"context"
	"log"
)

// NoopNotifier logs instead of delivering email. Used in dev mode when
// RabbitMQ is not configured, and in tests.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) SendResetEmail(ctx context.Context, email, token string) error {
	log.Printf("[noop-notifier] password reset: email=%s token=%s", email, token)
	return nil
}

func (n *NoopNotifier) SendVerificationEmail(ctx context.Context, email, token string) error {
	log.Printf("[noop-notifier] email verification: email=%s token=%s", email, token)
	return nil
}
