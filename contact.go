package main

import (
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type mailer interface {
	Send(name, email, message string) error
}

type smtpMailer struct {
	cfg SMTPConfig
	log *log.Logger
}

// Handle contact form submission with HTMX
func (s *server) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and message.",
		})
		return
	}

	if err := s.mailer.Send(name, email, message); err != nil {
		s.log.Error("Error sending contact email", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": ContactFailure,
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": ContactSuccess,
	})
}

func (m *smtpMailer) Send(name, email, message string) error {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return errors.New("SMTP credentials not configured")
	}

	toEmail := m.cfg.ToEmail
	if toEmail == "" {
		toEmail = m.cfg.User
	}

	msg := composeContactEmail(m.cfg.User, toEmail, name, email, message)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	if err := smtp.SendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{toEmail}, msg); err != nil {
		return errors.Wrap(err, "send mail")
	}

	m.log.Info("Contact email sent", "name", name, "email", email)
	return nil
}

func composeContactEmail(from, to, name, email, message string) []byte {
	// Header values must not carry line breaks.
	clean := strings.NewReplacer("\r", " ", "\n", " ")
	name, email = clean.Replace(name), clean.Replace(email)

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
