package repository

import (
	"context"
	"database/sql"

	"github.com/webroomers/pg-booking-service/internal/model"
	"github.com/webroomers/pg-booking-service/internal/permission"
)

// PermissionRepo provides access to the permission catalog and to
// sub-user grants.  Grants are stored as a comma-joined id string in
// subuser_permissions.permission_ids; the raw string is handed to the
// permission package for normalization and never parsed here.
type PermissionRepo struct {
	db *sql.DB
}

// NewPermissionRepo returns a PermissionRepo bound to the given database.
func NewPermissionRepo(db *sql.DB) *PermissionRepo { return &PermissionRepo{db: db} }

// CatalogByCompany loads the full permission catalog of a company,
// active and inactive entries alike.  Callers filter on status where
// selectability matters; the evaluator treats inactive entries as
// inert by itself.
func (r *PermissionRepo) CatalogByCompany(ctx context.Context, companyID uint64) (permission.Catalog, error) {
	const q = `SELECT id, company_id, permission_key, permission_label, status
	           FROM permission_catalog WHERE company_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cat := make(permission.Catalog, 0)
	for rows.Next() {
		var e model.PermissionEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Key, &e.Label, &e.Status); err != nil {
			return nil, err
		}
		cat = append(cat, e)
	}
	return cat, rows.Err()
}

// GrantsForUser loads a sub-user's grant profile.  A user without a
// grants row yields an unloaded profile, which the evaluator treats as
// deny.
func (r *PermissionRepo) GrantsForUser(ctx context.Context, userID uint64) (permission.Profile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT permission_ids FROM subuser_permissions WHERE user_id = ? LIMIT 1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return permission.Profile{}, nil
	}
	if err != nil {
		return permission.Profile{}, err
	}
	return permission.Profile{Loaded: true, Granted: []string{raw}}, nil
}

// SetGrants replaces a sub-user's grant set with the given canonical
// set.  The target user must be a SUBUSER of the same company;
// otherwise ErrForbidden is returned.  The upsert keeps one row per
// user.
func (r *PermissionRepo) SetGrants(ctx context.Context, companyID, userID uint64, set permission.IDSet) error {
	var role string
	var actualCompany uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT role, company_id FROM users WHERE id = ? LIMIT 1`, userID).Scan(&role, &actualCompany)
	if err != nil {
		return err
	}
	if role != model.RoleSubUser || actualCompany != companyID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO subuser_permissions (user_id, company_id, permission_ids) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE permission_ids = VALUES(permission_ids)`,
		userID, companyID, set.CSV())
	return err
}
