package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/domain"
)

func newPostFixture(t *testing.T) (*PostService, *stubPostRepo, *stubUserRepo) {
	t.Helper()
	posts := newStubPostRepo()
	users := newStubUserRepo()
	svc := NewPostService(posts, users, 2, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, posts, users
}

func TestPostService_Create(t *testing.T) {
	svc, _, users := newPostFixture(t)
	ctx := context.Background()
	author := seedUser(t, users, "john", "john@example.com")

	post, err := svc.Create(ctx, author, "  hello world  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.SID != 1 || post.Body != "hello world" || post.AuthorID != author.ID {
		t.Fatalf("unexpected post: %+v", post)
	}

	stored, _ := users.FindByID(ctx, author.ID)
	if len(stored.PostIDs) != 1 || stored.PostIDs[0] != post.ID {
		t.Fatalf("post not linked to author: %v", stored.PostIDs)
	}
}

func TestPostService_Create_LogsUnlinkedPost(t *testing.T) {
	svc, posts, users := newPostFixture(t)
	var buf bytes.Buffer
	svc.log = zerolog.New(&buf)
	ctx := context.Background()
	author := seedUser(t, users, "john", "john@example.com")
	users.saveErr = errors.New("connection reset")

	if _, err := svc.Create(ctx, author, "hello"); err == nil {
		t.Fatalf("expected error when the author cannot be saved")
	}
	if _, err := posts.FindBySID(ctx, 1); err != nil {
		t.Fatalf("post should already be stored: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"sid":1`) {
		t.Fatalf("expected warning naming the post, got %s", out)
	}
}

func TestPostService_Create_Rejections(t *testing.T) {
	svc, _, users := newPostFixture(t)
	ctx := context.Background()
	author := seedUser(t, users, "john", "john@example.com")

	if _, err := svc.Create(ctx, domain.Anonymous{}, "hi"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, author, "   "); !errors.Is(err, domain.ErrEmptyPost) {
		t.Fatalf("blank body: expected ErrEmptyPost, got %v", err)
	}
}

func TestPostService_Edit(t *testing.T) {
	svc, _, users := newPostFixture(t)
	ctx := context.Background()
	author := seedUser(t, users, "john", "john@example.com")
	other := seedUser(t, users, "susan", "susan@example.org")
	admin := seedUser(t, users, "root", "root@example.com")
	admin.Role, _ = mustRoleTable().Resolve(domain.RoleAdministrator)

	post, _ := svc.Create(ctx, author, "first")

	if _, err := svc.Edit(ctx, other, post.SID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign edit: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Edit(ctx, author, post.SID, "second"); err != nil {
		t.Fatalf("author edit: %v", err)
	}
	edited, err := svc.Edit(ctx, admin, post.SID, "third")
	if err != nil {
		t.Fatalf("admin edit: %v", err)
	}
	if edited.Body != "third" {
		t.Fatalf("body = %q", edited.Body)
	}
	if _, err := svc.Edit(ctx, author, 99, "x"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListByAuthor(t *testing.T) {
	svc, _, users := newPostFixture(t)
	ctx := context.Background()
	author := seedUser(t, users, "john", "john@example.com")

	for _, body := range []string{"a", "b", "c"} {
		if _, err := svc.Create(ctx, author, body); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	posts, err := svc.ListByAuthor(ctx, author.ID)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(posts) != 2 || posts[0].Body != "c" {
		t.Fatalf("expected newest two posts, got %d (first %q)", len(posts), posts[0].Body)
	}
}
