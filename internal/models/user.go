package models

// Roles a user can hold. Admin unlocks the /api/admin surface.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
	Role         string `json:"role"`
}

// Identity is the public projection of a User attached to a request
// after successful authentication.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ValidRole reports whether r is an assignable role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}
