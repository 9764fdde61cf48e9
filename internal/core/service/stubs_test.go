package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/inkwell/blog/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	seq     int
	saveErr error
	saves   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.PostIDs = append([]string(nil), u.PostIDs...)
	return &clone
}

func (r *stubUserRepo) conflict(u *domain.User) bool {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email || other.Username == u.Username {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.conflict(user) {
		return domain.ErrUserExists
	}
	r.seq++
	user.ID = "u" + strconv.Itoa(r.seq)
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.conflict(user) {
		return domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) DeleteAll(context.Context) error {
	r.users = make(map[string]*domain.User)
	return nil
}

type stubRoleRepo struct {
	roles map[domain.RoleID]domain.Role
	err   error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[domain.RoleID]domain.Role)}
}

func (r *stubRoleRepo) Upsert(_ context.Context, role domain.Role) error {
	if r.err != nil {
		return r.err
	}
	r.roles[role.Name] = role
	return nil
}

func (r *stubRoleRepo) List(context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRoleRepo) DeleteAll(context.Context) error {
	r.roles = make(map[domain.RoleID]domain.Role)
	return nil
}

type stubPostRepo struct {
	posts map[int64]*domain.Post
	sid   int64
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post)}
}

func (r *stubPostRepo) NextSID(context.Context) (int64, error) {
	r.sid++
	return r.sid, nil
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = "p" + strconv.FormatInt(post.SID, 10)
	clone := *post
	r.posts[post.SID] = &clone
	return nil
}

func (r *stubPostRepo) Save(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.SID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *post
	r.posts[post.SID] = &clone
	return nil
}

func (r *stubPostRepo) FindBySID(_ context.Context, sid int64) (*domain.Post, error) {
	if p, ok := r.posts[sid]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) ListByAuthor(_ context.Context, authorID string, limit int) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SID > out[j].SID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPostRepo) DeleteAll(context.Context) error {
	r.posts = make(map[int64]*domain.Post)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

var errStorage = errors.New("storage unavailable")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func mustRoleTable() *domain.RoleTable {
	table, err := domain.NewRoleTable(domain.CanonicalRoles())
	if err != nil {
		panic(err)
	}
	return table
}
