package repository

import (
	"context"
	"database/sql"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// RoomRepo provides read access to rooms.  Availability writes happen
// only inside EnquiryRepo transactions so a room can never be flipped
// independently of the tenancy that occupies it.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, property_id, name, availability, price_rupees, security_deposit, facilities, created_at, updated_at`

// ListByProperty returns all rooms of a PG, verifying that the PG
// belongs to the given company.  It returns sql.ErrNoRows when the PG
// does not exist and ErrForbidden when it belongs to another company.
func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID, companyID uint64) ([]model.Room, error) {
	var actualCompany uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT company_id FROM properties WHERE id = ?`, propertyID).Scan(&actualCompany)
	if err != nil {
		return nil, err
	}
	if actualCompany != companyID {
		return nil, ErrForbidden
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE property_id = ? ORDER BY name`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.PropertyID, &rm.Name, &rm.Availability, &rm.PriceRupees,
			&rm.SecurityDeposit, &rm.Facilities, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// GetByID fetches a single room.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var rm model.Room
	err := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? LIMIT 1`, id).
		Scan(&rm.ID, &rm.PropertyID, &rm.Name, &rm.Availability, &rm.PriceRupees,
			&rm.SecurityDeposit, &rm.Facilities, &rm.CreatedAt, &rm.UpdatedAt)
	return rm, err
}
