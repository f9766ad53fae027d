package domain

// User identifies the person operating the client.
type User struct {
	ID          int64
	DisplayName string
}

// Known reports whether the user carries a server-issued identity.
func (u User) Known() bool {
	return u.ID != 0
}
