package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
	UserDisabled = "disabled"
)

// User is one record of the persisted users document. Username is the key.
// Password holds the bcrypt hash and is kept out of client responses; the
// store serializes it through diskUser.
type User struct {
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDisabled reports whether login must be rejected outright.
func (u *User) IsDisabled() bool {
	return u.Status == UserDisabled
}
