package auth

// Role is the closed set of platform roles. Role checks always go through
// this type rather than loose string comparison.
type Role string

const (
	RoleUser  Role = "user"  // books slots
	RoleOwner Role = "owner" // manages venues and decides bookings
	RoleAdmin Role = "admin" // platform operator, superset of owner rights
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleOwner, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the authenticated identity attached to every request. Passing the
// role together with the ID keeps identity fields type-tagged at write time,
// so an owner-only field can never silently receive a plain user identity.
type Actor struct {
	ID   string // UUID
	Role Role
}

// IsManager reports whether the actor holds owner or admin rights.
func (a Actor) IsManager() bool {
	return a.Role == RoleOwner || a.Role == RoleAdmin
}
