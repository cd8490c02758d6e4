package utils

import (
	"fmt"
	"net/smtp"

	"COFOUNDER-SPHERE_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendMatchDigest tells a founder that a generation run produced new
// co-founder matches for them.
func (e *EmailService) SendMatchDigest(to string, count int) error {
	subject := "New co-founder matches are ready"
	body := fmt.Sprintf(`
Hello,

Your latest matching run on Co-Founder Sphere found %d potential co-founder(s) for you.

Sign in and open the Matches page to see who they are and why they fit.

Best regards,
%s
`, count, e.config.FromName)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		e.config.FromName, fromEmail, to, subject, body)

	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	if err := smtp.SendMail(addr, auth, fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
