package repository

import (
	"context"
	"database/sql"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// PropertyRepo provides read access to PGs.  Properties are managed
// out of band; this service only lists them for enquiry targeting and
// reads the lock-in period for checkout eligibility.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo returns a PropertyRepo bound to the given database.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// ListByCompany returns all PGs operated by a company, newest first.
func (r *PropertyRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.Property, error) {
	const q = `SELECT id, company_id, name, address, lock_in_days, created_at
	           FROM properties WHERE company_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	props := make([]model.Property, 0)
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Address, &p.LockInDays, &p.CreatedAt); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

// GetByID fetches a single PG.  It returns sql.ErrNoRows when the PG
// does not exist.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (model.Property, error) {
	const q = `SELECT id, company_id, name, address, lock_in_days, created_at
	           FROM properties WHERE id = ? LIMIT 1`
	var p model.Property
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.CompanyID, &p.Name, &p.Address, &p.LockInDays, &p.CreatedAt)
	return p, err
}
