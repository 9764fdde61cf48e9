package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/ports"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.MailMessage
	err  error
	done chan struct{}
}

func newRecordingMailer(expected int) *recordingMailer {
	return &recordingMailer{done: make(chan struct{}, expected)}
}

func (m *recordingMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *recordingMailer) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-m.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestMailDispatcher_DeliversAll(t *testing.T) {
	mailer := newRecordingMailer(3)
	d := NewMailDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "1"})
	d.Enqueue(ports.MailMessage{To: "b@example.com", Subject: "2"})
	d.Enqueue(ports.MailMessage{To: "a@example.com", Subject: "3"})
	mailer.wait(t, 3)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(mailer.sent))
	}

	var forA []string
	for _, m := range mailer.sent {
		if m.To == "a@example.com" {
			forA = append(forA, m.Subject)
		}
	}
	if len(forA) != 2 || forA[0] != "1" || forA[1] != "3" {
		t.Fatalf("per-recipient order not preserved: %v", forA)
	}
}

func TestMailDispatcher_ShardIsStable(t *testing.T) {
	d := NewMailDispatcher(8, newRecordingMailer(0), zerolog.Nop())
	first := d.shardIndex("john@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("john@example.com"); got != first {
			t.Fatalf("shard changed: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestMailDispatcher_DefaultWorkers(t *testing.T) {
	d := NewMailDispatcher(0, newRecordingMailer(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestMailDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	mailer := newRecordingMailer(2)
	mailer.err = errors.New("smtp down")
	d := NewMailDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.MailMessage{To: "a@example.com"})
	d.Enqueue(ports.MailMessage{To: "a@example.com"})
	mailer.wait(t, 2)
}
