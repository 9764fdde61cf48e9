package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/inkwell/blog/internal/core/ports"
)

func newTestSMTPMailer(t *testing.T, cfg SMTPConfig) *SMTPMailer {
	t.Helper()
	m, err := NewSMTPMailer(cfg)
	if err != nil {
		t.Fatalf("NewSMTPMailer: %v", err)
	}
	return m
}

func TestSMTPMailer_Send(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{
		Host:          "smtp.example.com",
		Port:          587,
		Username:      "mailer",
		Password:      "pw",
		Sender:        "Blog Admin <admin@example.com>",
		SubjectPrefix: "[Blog]",
	})

	var raw bytes.Buffer
	m.send = func(_ context.Context, msg *gomail.Msg) error {
		_, err := msg.WriteTo(&raw)
		return err
	}

	err := m.Send(context.Background(), ports.MailMessage{To: "john@example.com", Subject: "Confirm Your Account", Body: "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	out := raw.String()
	for _, want := range []string{
		"Subject: [Blog] Confirm Your Account",
		"admin@example.com",
		"john@example.com",
		"Date: ",
		"Message-ID: <",
		"hello",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("message missing %q:\n%s", want, out)
		}
	}
}

func TestSMTPMailer_EncodesNonASCIISubject(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{Host: "localhost", Port: 25, Sender: "admin@example.com"})

	var raw bytes.Buffer
	m.send = func(_ context.Context, msg *gomail.Msg) error {
		_, err := msg.WriteTo(&raw)
		return err
	}
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@example.com", Subject: "Bestätigen", Body: "x"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if strings.Contains(raw.String(), "Bestätigen") || !strings.Contains(raw.String(), "=?UTF-8?") {
		t.Fatalf("subject not encoded:\n%s", raw.String())
	}
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{Host: "localhost", Port: 25, Sender: "admin@example.com"})
	m.send = func(context.Context, *gomail.Msg) error {
		return errors.New("connection refused")
	}
	if err := m.Send(context.Background(), ports.MailMessage{To: "a@example.com"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSMTPMailer_StalledRelayHonoursDeadline(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{Host: "localhost", Port: 25, Sender: "admin@example.com"})
	m.send = func(ctx context.Context, _ *gomail.Msg) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Send(ctx, ports.MailMessage{To: "a@example.com"}) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Send did not return after its deadline")
	}
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{Host: "localhost", Port: 25, Sender: "admin@example.com"})
	m.send = func(context.Context, *gomail.Msg) error {
		t.Fatalf("send called with a cancelled context")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, ports.MailMessage{To: "a@example.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSMTPMailer_InvalidRecipient(t *testing.T) {
	m := newTestSMTPMailer(t, SMTPConfig{Host: "localhost", Port: 25, Sender: "admin@example.com"})
	m.send = func(context.Context, *gomail.Msg) error {
		t.Fatalf("send called for an invalid recipient")
		return nil
	}
	if err := m.Send(context.Background(), ports.MailMessage{To: "not an address"}); err == nil {
		t.Fatalf("expected error")
	}
}
