package components

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/clearbridge-loan-origination/internal/config"
)

// SMTPSender delivers notification emails through a plain SMTP relay
type SMTPSender struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(logger *slog.Logger, cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one email to the given recipients. smtp.SendMail does not
// take a context, so cancellation is only checked before the dial.
func (s *SMTPSender) Send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	message := buildMessage(s.cfg.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, s.cfg.From, to, message); err != nil {
		s.logger.Error("Failed to send email",
			"to", strings.Join(to, ","),
			"subject", subject,
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("Email sent",
		"to", strings.Join(to, ","),
		"subject", subject,
	)
	return nil
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
