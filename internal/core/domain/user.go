package domain

import "github.com/uptrace/bun"

const (
	RoleAdministrator = "Administrator"
	RoleClient        = "Client"
)

// User is the persisted account record. Password holds a bcrypt hash; the
// plaintext never survives past the HTTP edge.
type User struct {
	bun.BaseModel `bun:"table:users" json:"-"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Email    string `bun:"email,notnull" json:"email"`
	Password string `bun:"password,notnull" json:"password"`
	Role     string `bun:"role,notnull" json:"role"`
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

// ValidRole reports whether role is one of the known authorization tiers.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleClient
}
