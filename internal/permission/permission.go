// Package permission resolves whether a principal may perform a named
// action.  Owners are implicitly fully privileged; delegated sub-users
// are checked against their granted permission set intersected with the
// active catalog; every other principal is denied.  Evaluation is a
// pure query with no side effects.
package permission

import (
	"sort"
	"strconv"
	"strings"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// Catalog is the authoritative list of grantable action keys for one
// company, as loaded from the permission_catalog table.
type Catalog []model.PermissionEntry

// IDForKey resolves a permission key to its catalog id.  Only active
// entries resolve; an inactive entry behaves as if it did not exist,
// which keeps previously granted but since-deactivated permissions
// inert.
func (c Catalog) IDForKey(key string) (uint64, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, e := range c {
		if e.Status == model.PermissionActive && strings.ToLower(e.Key) == key {
			return e.ID, true
		}
	}
	return 0, false
}

// activeID reports whether id belongs to an active catalog entry.
func (c Catalog) activeID(id uint64) bool {
	for _, e := range c {
		if e.ID == id {
			return e.Status == model.PermissionActive
		}
	}
	return false
}

// IDSet is the canonical ordered representation of a granted
// permission set: sorted, deduplicated catalog ids.  All incoming
// representations (id arrays, key arrays, comma-joined strings) are
// normalized into this type at the boundary so no other package parses
// grant strings.
type IDSet []uint64

// Contains reports membership via binary search; the set is sorted by
// construction.
func (s IDSet) Contains(id uint64) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

// CSV renders the set in the comma-joined form stored in
// subuser_permissions.permission_ids.
func (s IDSet) CSV() string {
	parts := make([]string, 0, len(s))
	for _, id := range s {
		parts = append(parts, strconv.FormatUint(id, 10))
	}
	return strings.Join(parts, ",")
}

// NormalizeGrants converts any incoming grant representation into the
// canonical IDSet.  Each element of raw may itself be a comma-joined
// string; individual tokens may be numeric catalog ids or catalog
// keys.  Tokens that do not resolve to an active catalog entry are
// dropped, so the result is always a subset of the active catalog
// (inactive grants stay inert rather than erroring).
func NormalizeGrants(raw []string, cat Catalog) IDSet {
	seen := make(map[uint64]struct{})
	for _, r := range raw {
		for _, tok := range strings.Split(r, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if id, err := strconv.ParseUint(tok, 10, 64); err == nil {
				if cat.activeID(id) {
					seen[id] = struct{}{}
				}
				continue
			}
			if id, ok := cat.IDForKey(tok); ok {
				seen[id] = struct{}{}
			}
		}
	}
	out := make(IDSet, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
