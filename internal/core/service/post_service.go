package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/api/metrics"
	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

type PostService struct {
	posts   ports.PostRepository
	users   ports.UserRepository
	perPage int
	now     func() time.Time
	log     zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, perPage int, log zerolog.Logger) *PostService {
	if perPage <= 0 {
		perPage = 20
	}
	return &PostService{posts: posts, users: users, perPage: perPage, now: time.Now, log: log}
}

// Create stores a new post and links it to its author. The author record is
// re-read and saved explicitly after the post exists.
func (s *PostService) Create(ctx context.Context, author domain.Identity, body string) (*domain.Post, error) {
	if !author.Can(domain.PermissionWrite) {
		return nil, domain.ErrForbidden
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyPost
	}

	sid, err := s.posts.NextSID(ctx)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	post := &domain.Post{
		SID:       sid,
		Body:      body,
		Timestamp: s.now().UTC(),
		AuthorID:  author.UserID(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	owner, err := s.users.FindByID(ctx, post.AuthorID)
	if err != nil {
		s.warnUnlinked(post, err)
		return nil, fmt.Errorf("create post: load author: %w", err)
	}
	owner.AddPost(post.ID)
	if err := s.users.Save(ctx, owner); err != nil {
		s.warnUnlinked(post, err)
		return nil, fmt.Errorf("create post: link author: %w", err)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Int64("sid", post.SID).Str("author_id", post.AuthorID).Msg("post created")
	return post, nil
}

// warnUnlinked records a stored post its author does not reference.
func (s *PostService) warnUnlinked(post *domain.Post, err error) {
	s.log.Warn().Err(err).Int64("sid", post.SID).Str("author_id", post.AuthorID).Msg("post stored without author link")
}

func (s *PostService) Get(ctx context.Context, sid int64) (*domain.Post, error) {
	return s.posts.FindBySID(ctx, sid)
}

// Edit replaces the body of a post. Only its author or an administrator
// may edit it.
func (s *PostService) Edit(ctx context.Context, editor domain.Identity, sid int64, body string) (*domain.Post, error) {
	post, err := s.posts.FindBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !post.EditableBy(editor) {
		return nil, domain.ErrForbidden
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyPost
	}

	post.Body = body
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("edit post: %w", err)
	}
	return post, nil
}

// ListByAuthor returns the author's most recent posts, one page at most.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID, s.perPage)
}

var _ ports.PostService = (*PostService)(nil)
