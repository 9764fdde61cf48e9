package handler

import (
	"strconv"
	"time"

	"github.com/inkwell/blog/internal/core/domain"
)

type postRequest struct {
	Body string `json:"body" validate:"required"`
}

type postLinks struct {
	Self string `json:"self"`
}

type postResponse struct {
	SID       int64     `json:"sid"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	AuthorID  string    `json:"author_id"`
	Links     postLinks `json:"_links"`
}

func presentPost(p *domain.Post) *postResponse {
	return &postResponse{
		SID:       p.SID,
		Body:      p.Body,
		Timestamp: p.Timestamp,
		AuthorID:  p.AuthorID,
		Links:     postLinks{Self: "/posts/" + strconv.FormatInt(p.SID, 10)},
	}
}

func presentPosts(posts []*domain.Post) []*postResponse {
	out := make([]*postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, presentPost(p))
	}
	return out
}
