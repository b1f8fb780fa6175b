package permission

import "github.com/webroomers/pg-booking-service/internal/model"

// Principal identifies the acting user for an authorization check.
type Principal struct {
	UserID uint64 // acting user's id
	Role   string // one of model.Role*
}

// Profile carries a sub-user's granted permissions as delivered by the
// persistence layer.  Loaded distinguishes "no grants" from "grants not
// fetched": when the profile has not loaded at all, evaluation denies.
// The historical client treated the missing-profile case inconsistently
// (some screens allowed, some hid); deny is the single explicit default
// here.
type Profile struct {
	Loaded  bool     // whether permission data was present at all
	Granted []string // raw grant tokens: ids, keys, or comma-joined
}

// HasPermission reports whether the principal may perform the action
// named by permissionKey.  Owners always may.  Sub-users may when the
// key resolves to an active catalog id contained in their normalized
// grant set.  Tenants and unknown roles never hold landlord
// permissions.
func HasPermission(p Principal, prof Profile, permissionKey string, cat Catalog) bool {
	switch p.Role {
	case model.RoleOwner:
		return true
	case model.RoleSubUser:
		if !prof.Loaded {
			return false
		}
		id, ok := cat.IDForKey(permissionKey)
		if !ok {
			return false
		}
		return NormalizeGrants(prof.Granted, cat).Contains(id)
	default:
		return false
	}
}
