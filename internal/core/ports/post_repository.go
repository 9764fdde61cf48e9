package ports

import (
	"context"

	"github.com/inkwell/blog/internal/core/domain"
)

// PostRepository persists blog posts.
type PostRepository interface {
	// NextSID allocates the next sequential post number.
	NextSID(ctx context.Context) (int64, error)
	// Create inserts post and fills in its ID.
	Create(ctx context.Context, post *domain.Post) error
	Save(ctx context.Context, post *domain.Post) error
	FindBySID(ctx context.Context, sid int64) (*domain.Post, error)
	// ListByAuthor returns the newest posts of an author, at most limit.
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Post, error)
	DeleteAll(ctx context.Context) error
}
