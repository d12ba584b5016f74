package authdomain

import "fmt"

// Role is a league-wide permission level. Roles are ordered: a higher role
// holds every permission of the roles below it.
type Role int

const (
	RoleUnknown Role = iota
	RolePlayer
	RoleManager
	RoleAdmin
	RoleCommissioner
)

var roleNames = map[Role]string{
	RolePlayer:       "player",
	RoleManager:      "manager",
	RoleAdmin:        "admin",
	RoleCommissioner: "commissioner",
}

// ParseRole converts a stored or submitted role name to a Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// HasPermission reports whether role meets or exceeds required.
func HasPermission(role, required Role) bool {
	if !role.IsValid() || !required.IsValid() {
		return false
	}
	return role >= required
}

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// String returns the string representation of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
