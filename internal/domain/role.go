package domain

// Role is the caller's role as resolved by the platform gateway.
type Role string

const (
	RoleStudent      Role = "student"
	RolePsychologist Role = "psychologist"
	RoleAdmin        Role = "admin"
)

// ToRole validates a raw role string.
func ToRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RolePsychologist, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}
