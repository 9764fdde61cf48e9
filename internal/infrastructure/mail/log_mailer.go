// Package mail delivers outgoing account emails.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/ports"
)

// LogMailer writes messages to the log instead of sending them. It is the
// mailer used when no SMTP host is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail not sent: no smtp host configured")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)
