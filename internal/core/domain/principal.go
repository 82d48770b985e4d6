package domain

// Principal is the identity recovered from a verified bearer token.
type Principal struct {
	ID   string
	Role Role
}

// RoleSet is the set of roles a route accepts. An empty set accepts any
// authenticated principal.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows reports whether role may pass a gate configured with s.
func (s RoleSet) Allows(role Role) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[role]
	return ok
}
