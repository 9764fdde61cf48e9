package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/inkwell/blog/internal/core/ports"
)

const defaultSMTPTimeout = 15 * time.Second

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Sender        string
	SubjectPrefix string
	// Timeout bounds dialing and every command exchanged with the relay.
	Timeout time.Duration
}

// SMTPMailer sends plain-text messages through an SMTP relay. Delivery
// stops as soon as the caller's context is done.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(ctx context.Context, msg *gomail.Msg) error
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{
		cfg: cfg,
		send: func(ctx context.Context, msg *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := m.build(msg)
	if err != nil {
		return err
	}
	if err := m.send(ctx, out); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) build(msg ports.MailMessage) (*gomail.Msg, error) {
	out := gomail.NewMsg()
	if err := out.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("mail sender %q: %w", m.cfg.Sender, err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("mail recipient %q: %w", msg.To, err)
	}
	out.Subject(strings.TrimSpace(m.cfg.SubjectPrefix + " " + msg.Subject))
	out.SetDate()
	out.SetMessageID()
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return out, nil
}

var _ ports.Mailer = (*SMTPMailer)(nil)
