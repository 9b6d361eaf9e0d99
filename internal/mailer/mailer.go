package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Config holds SMTP settings for admin notification mail.
type Config struct {
	Host       string
	Port       string
	From       string
	Password   string
	AdminEmail string
}

// Enabled reports whether notification mail is configured at all. An empty
// admin address disables sending without being an error.
func (c Config) Enabled() bool {
	return c.AdminEmail != "" && c.From != ""
}

// SendAdminNotification emails the site administrator about a new visitor
// submission. Best effort only; callers log and move on.
func SendAdminNotification(log *zerolog.Logger, cfg Config, subject, body string) error {
	if !cfg.Enabled() {
		log.Debug().Msg("notification mail not configured, skipping")
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, cfg.AdminEmail, subject, body,
	)

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.From, []string{cfg.AdminEmail}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send notification mail to %s: %v", cfg.AdminEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("notification mail sent to %s (%s)", cfg.AdminEmail, subject)
	return nil
}
