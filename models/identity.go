package models

// RoleAdmin is the only role the login endpoint ever issues.
const RoleAdmin = "admin"

// Identity is the principal resolved from a bearer token.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanModifyBook reports whether i may update or delete b: admins always, everyone else only
// for books they own.
func (i Identity) CanModifyBook(b *Book) bool {
	return i.IsAdmin() || (i.Username != "" && i.Username == b.OwnerID)
}
