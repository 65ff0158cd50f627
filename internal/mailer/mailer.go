// Package mailer sends notification email with optional attachments.
// Mail is best effort everywhere it is used: failures are logged by the
// caller and never fail the request.
package mailer

import (
	"fmt"
	"io"

	"github.com/go-gomail/gomail"

	"psychcare-server/internal/config"
)

// Mailer wraps an SMTP dialer. A nil Mailer drops all mail, which keeps
// development setups working without an SMTP server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds a Mailer from config, or nil when no SMTP host is set.
func New(cfg config.MailerConfig) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.DefaultFrom,
	}
}

// Send delivers a plain-text message, attaching attachmentData under
// attachmentName when both are provided.
func (m *Mailer) Send(to, subject, body, attachmentName string, attachmentData []byte) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if attachmentName != "" && len(attachmentData) > 0 {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachmentData)
			return err
		}))
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
