package domain

// Identity is the authenticated caller derived from a verified bearer token.
type Identity struct {
	ID     string
	Email  string
	Role   Role
	Name   string
	Hostel string
}

// IsWarden reports whether the caller holds the warden role.
func (i Identity) IsWarden() bool {
	return i.Role == RoleWarden
}
