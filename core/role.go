package core

// Role is granted at registration and never changes afterwards.
type Role string

const (
	Admin    Role = "admin"
	Redactor Role = "redactor"
	Viewer   Role = "viewer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case Admin, Redactor, Viewer:
		return true
	default:
		return false
	}
}

// In returns true if r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// invitationCodes is a static table. Codes don't expire and can be used any number of times.
var invitationCodes = map[string]Role{
	"ADMIN-2025":    Admin,
	"REDACTOR-2025": Redactor,
}

// ResolveRole maps an invitation code to the role it grants. Empty and unknown codes yield Viewer.
func ResolveRole(code string) Role {
	if role, ok := invitationCodes[code]; ok {
		return role
	}
	return Viewer
}
