package adapter

import (
	"context"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
)

type logEmailSender struct {
	logger *logger.Logger
}

// NewLogEmailSender returns an [EmailSender] that only writes messages to the
// log. Development setups use it so that passcodes and reset links can be
// read from the console.
func NewLogEmailSender(log *logger.Logger) EmailSender {
	return &logEmailSender{logger: log}
}

func (l *logEmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}

	l.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("email (not sent: no provider configured)")
	return nil
}
