package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"net/url"

	"github.com/utdisa/isa-portal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Mailer delivers the account emails sent by the auth service.
type Mailer interface {
	SendConfirmationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

type EmailService struct {
	cfg *config.Config
}

// NewMailer returns an SMTP mailer when SMTP is configured and a mailer that only
// logs the links otherwise.
func NewMailer(cfg *config.Config, logger *slog.Logger) Mailer {
	if !cfg.SMTPEnabled() {
		return &logMailer{publicURL: cfg.PublicURL, logger: logger}
	}
	return NewEmailService(cfg)
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsconfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("tls dial failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create smtp client: %w", err)
		}
	} else {
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("RCPT TO failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close DATA: %w", err)
	}
	return nil
}

func renderEmail(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return body.String(), nil
}

type emailData struct {
	Email string
	Link  string
	Token string
}

func (s *EmailService) SendConfirmationEmail(_ context.Context, to, token string) error {
	body, err := renderEmail("confirm.html", emailData{Email: to, Link: confirmationLink(s.cfg.PublicURL, token)})
	if err != nil {
		return err
	}
	return s.SendEmail([]string{to}, "Confirm your ISA account", body)
}

func (s *EmailService) SendPasswordResetEmail(_ context.Context, to, token string) error {
	body, err := renderEmail("reset.html", emailData{Email: to, Link: resetLink(s.cfg.PublicURL, token), Token: token})
	if err != nil {
		return err
	}
	return s.SendEmail([]string{to}, "Reset your ISA password", body)
}

func confirmationLink(publicURL, token string) string {
	return publicURL + "/auth/v1/verify?token=" + url.QueryEscape(token)
}

func resetLink(publicURL, token string) string {
	return publicURL + "/reset-password?token=" + url.QueryEscape(token)
}

type logMailer struct {
	publicURL string
	logger    *slog.Logger
}

func (m *logMailer) SendConfirmationEmail(ctx context.Context, to, token string) error {
	m.logger.InfoContext(ctx, "smtp disabled, confirmation link not sent",
		slog.String("to", to), slog.String("link", confirmationLink(m.publicURL, token)))
	return nil
}

func (m *logMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	m.logger.InfoContext(ctx, "smtp disabled, password reset link not sent",
		slog.String("to", to), slog.String("link", resetLink(m.publicURL, token)))
	return nil
}
