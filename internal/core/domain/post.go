package domain

import "time"

// Post is a blog entry. SID is the short sequential number used in URLs.
type Post struct {
	ID        string    `json:"id"`
	SID       int64     `json:"sid"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	AuthorID  string    `json:"author_id"`
}

// EditableBy reports whether id may change the post: its author or an
// administrator.
func (p *Post) EditableBy(id Identity) bool {
	if id.IsAdministrator() {
		return true
	}
	return id.IsAuthenticated() && id.UserID() == p.AuthorID
}
