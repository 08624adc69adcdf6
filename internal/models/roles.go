package models

// UserRole defines the access level of a user account.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleGuide     UserRole = "guide"
	RoleLeadGuide UserRole = "lead-guide"
	RoleAdmin     UserRole = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}
