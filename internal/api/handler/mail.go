package handler

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

//go:embed templates/*.txt
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))

// MailConfig controls the links placed in account emails.
type MailConfig struct {
	// BaseURL is prepended to every link, e.g. "https://blog.example.com".
	BaseURL string
	// TokenTTL is the validity of emailed tokens. Zero means the codec default.
	TokenTTL time.Duration
}

type mailData struct {
	User *domain.User
	Link string
}

// notifier renders account emails and hands them to the mail queue.
type notifier struct {
	queue ports.MailQueue
	cfg   MailConfig
}

func (n *notifier) link(path, token string) string {
	return strings.TrimRight(n.cfg.BaseURL, "/") + path + "/" + token
}

func (n *notifier) send(to, subject, tmpl string, data mailData) error {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	n.queue.Enqueue(ports.MailMessage{To: to, Subject: subject, Body: body.String()})
	return nil
}

func (n *notifier) confirmation(user *domain.User, token string) error {
	return n.send(user.Email, "Confirm Your Account", "confirm.txt", mailData{
		User: user,
		Link: n.link("/auth/confirm", token),
	})
}

func (n *notifier) passwordReset(user *domain.User, token string) error {
	return n.send(user.Email, "Reset Your Password", "reset_password.txt", mailData{
		User: user,
		Link: n.link("/auth/reset", token),
	})
}

func (n *notifier) emailChange(user *domain.User, newEmail, token string) error {
	return n.send(newEmail, "Confirm your email address", "change_email.txt", mailData{
		User: user,
		Link: n.link("/auth/change-email", token),
	})
}
