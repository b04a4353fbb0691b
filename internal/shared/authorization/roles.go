package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseUserRole falls back to RoleUser for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// RoleFromAdminFlag maps the profile is_admin flag onto a role.
func RoleFromAdminFlag(isAdmin bool) UserRole {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}
