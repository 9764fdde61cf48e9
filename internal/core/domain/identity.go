package domain

// Identity is whoever issued the current request: a loaded *User or
// Anonymous.
type Identity interface {
	Can(perm Permission) bool
	IsAdministrator() bool
	IsAuthenticated() bool
	UserID() string
}

var (
	_ Identity = (*User)(nil)
	_ Identity = Anonymous{}
)
