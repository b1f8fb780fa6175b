package model

// PermissionActive is the catalog status of entries that may be
// granted to sub-users.  Entries with any other status remain in the
// catalog for display but are inert: they are not selectable when
// granting and never authorize an action even if previously granted.
const PermissionActive = "Active"

// PermissionEntry is one row of the permission catalog: a grantable
// action key with its display label and active/inactive status.
//
// Fields:
//  ID        – permission_id on the wire.
//  CompanyID – company whose catalog this entry belongs to.
//  Key       – permission_key, the stable action name (e.g. "enquiry").
//  Label     – permission_label shown when granting.
//  Status    – "Active" or "Inactive".
type PermissionEntry struct {
	ID        uint64 // permission_catalog.id
	CompanyID uint64 // permission_catalog.company_id
	Key       string // permission_catalog.permission_key
	Label     string // permission_catalog.permission_label
	Status    string // permission_catalog.status
}
