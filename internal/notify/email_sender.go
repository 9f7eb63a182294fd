package notify

import (
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/shanehull/lmsentiment/internal/logging"
)

// EmailConfig holds SMTP configuration for sending emails.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
	Timeout    time.Duration
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    EmailConfig
	logger *logging.Logger
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig, logger *logging.Logger) *EmailSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &EmailSender{cfg: cfg, logger: logger}
}

// Send delivers an email with HTML body and plain text fallback. A disabled
// sender does nothing.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := s.message(msg)

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = s.cfg.Timeout

	if err := dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email to %s (Subject: %s): %v", s.cfg.ToEmail, msg.Subject, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent: %s", msg.Subject)
	return nil
}

func (s *EmailSender) message(msg *RenderedMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}
