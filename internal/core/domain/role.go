package domain

// Role is one value of the closed set of account roles.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleManager         Role = "manager"
	RoleFinancial       Role = "financial"
	RoleAcademic        Role = "academic"
	RoleState           Role = "state"
	RoleCenter          Role = "center"
	RoleTeacher         Role = "teacher"
	RoleCardAdmin       Role = "cardadmin"
	RoleResourceManager Role = "resource_manager"
	RoleUser            Role = "user"
)

// Roles lists every known role.
var Roles = []Role{
	RoleAdmin,
	RoleManager,
	RoleFinancial,
	RoleAcademic,
	RoleState,
	RoleCenter,
	RoleTeacher,
	RoleCardAdmin,
	RoleResourceManager,
	RoleUser,
}

// manages is the static "who may manage whom" table. It is not transitive:
// manager manages center, but nothing center manages.
// RoleAdmin is absent on purpose; it is handled by CanManage.
var manages = map[Role]map[Role]struct{}{
	RoleManager:  roleSet(RoleState, RoleCenter),
	RoleAcademic: roleSet(RoleTeacher),
}

func roleSet(roles ...Role) map[Role]struct{} {
	s := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// CanManage reports whether an actor holding actor may create or edit an
// account holding target. Admin manages every role, including admin.
// Unknown actor roles manage nothing.
func CanManage(actor, target Role) bool {
	if actor == RoleAdmin {
		return true
	}
	_, ok := manages[actor][target]
	return ok
}

// ManagedRoles returns the roles actor is configured to manage, in Roles order.
func ManagedRoles(actor Role) []Role {
	out := make([]Role, 0, len(Roles))
	for _, r := range Roles {
		if CanManage(actor, r) {
			out = append(out, r)
		}
	}
	return out
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ActiveByDefault reports the status flag a freshly created account of role r gets.
func (r Role) ActiveByDefault() bool {
	return r == RoleCardAdmin || r == RoleResourceManager
}
