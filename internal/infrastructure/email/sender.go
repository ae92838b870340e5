// Package email delivers verification codes to users.
package email

import (
	"context"

	"stockpile/pkg/logger"
)

// LogSender writes codes to the application log instead of sending mail.
// Used in development and wherever no SMTP relay is configured.
type LogSender struct{}

// NewLogSender creates a log-backed code sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// SendCode logs the verification code for the address.
func (s *LogSender) SendCode(ctx context.Context, email, code string) error {
	logger.Info(ctx, "verification code issued",
		"email", email,
		"code", code)
	return nil
}
