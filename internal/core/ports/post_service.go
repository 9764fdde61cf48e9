package ports

import (
	"context"

	"github.com/inkwell/blog/internal/core/domain"
)

// PostService creates and edits posts on behalf of an identity.
type PostService interface {
	Create(ctx context.Context, author domain.Identity, body string) (*domain.Post, error)
	Get(ctx context.Context, sid int64) (*domain.Post, error)
	Edit(ctx context.Context, editor domain.Identity, sid int64, body string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
}
