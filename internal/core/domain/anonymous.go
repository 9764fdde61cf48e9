package domain

// Anonymous stands in for an unauthenticated request. It holds no role and
// is denied every permission.
type Anonymous struct{}

func (Anonymous) Can(Permission) bool   { return false }
func (Anonymous) IsAdministrator() bool { return false }
func (Anonymous) IsAuthenticated() bool { return false }
func (Anonymous) UserID() string        { return "" }
