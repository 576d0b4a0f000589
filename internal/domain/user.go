package domain

// Role represents the access level of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a student or an administrator
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
