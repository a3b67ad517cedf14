// Package mailer sends the storefront's transactional emails. Delivery is
// best effort: callers receive a boolean outcome and the storefront never
// fails an operation because a message did not go out.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/RGianluca98/Stycly/internal/config"
)

// Dispatcher sends one fully-formed message to one recipient.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string) bool
}

// SMTPDispatcher implements Dispatcher over plain SMTP with STARTTLS.
// When credentials are not configured it logs the would-be message and
// reports success, so development environments keep working.
type SMTPDispatcher struct {
	cfg config.MailConfig
	log *slog.Logger
}

// NewSMTPDispatcher creates an SMTP dispatcher
func NewSMTPDispatcher(cfg config.MailConfig, log *slog.Logger) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg, log: log}
}

func (d *SMTPDispatcher) Send(ctx context.Context, to, subject, htmlBody string) bool {
	if d.cfg.Username == "" || d.cfg.Password == "" || d.cfg.Server == "" {
		d.log.Warn("mail not configured, skipping delivery",
			"to", to,
			"subject", subject,
		)
		return true
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n"+
		"MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		d.cfg.Sender, to, subject, htmlBody)

	addr := fmt.Sprintf("%s:%d", d.cfg.Server, d.cfg.Port)
	auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Server)

	if err := smtp.SendMail(addr, auth, d.cfg.Sender, []string{to}, []byte(msg)); err != nil {
		d.log.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return false
	}
	return true
}
