package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// EnquiryRepo provides persistence for enquiries and the room
// availability writes coupled to them.  Accepting an enquiry and
// booking its room happen inside one transaction so that the "at most
// one accepted active enquiry per room" invariant is enforced
// authoritatively here, regardless of what the advisory selection
// check saw earlier.
type EnquiryRepo struct {
	db *sql.DB
}

// NewEnquiryRepo returns an EnquiryRepo bound to the given database.
func NewEnquiryRepo(db *sql.DB) *EnquiryRepo { return &EnquiryRepo{db: db} }

// DB exposes the underlying handle for transaction sharing.
func (r *EnquiryRepo) DB() *sql.DB { return r.db }

// EnquiryRecord mirrors the enquiries table for insertion.  Business
// logic should use model.Enquiry.
type EnquiryRecord struct {
	ID             uint64
	CompanyID      uint64
	TenantID       uint64
	PropertyID     uint64
	RoomID         *uint64
	StatusCode     int
	Gender         string
	FoodPreference string
	Type           string
	Message        string
	CheckInDate    string // YYYY-MM-DD
	CheckOutDate   string // YYYY-MM-DD
}

// Create inserts a new pending enquiry and populates the generated ID
// on the record.
func (r *EnquiryRepo) Create(ctx context.Context, rec *EnquiryRecord) error {
	const q = `INSERT INTO enquiries
	  (company_id, tenant_id, property_id, room_id, status, active, gender, food_preference, type, message, check_in_date, check_out_date)
	  VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?, ?, ?, ?)`
	var roomID interface{}
	if rec.RoomID != nil && *rec.RoomID != 0 {
		roomID = *rec.RoomID
	}
	res, err := r.db.ExecContext(ctx, q,
		rec.CompanyID, rec.TenantID, rec.PropertyID, roomID, rec.StatusCode,
		rec.Gender, rec.FoodPreference, rec.Type, rec.Message, rec.CheckInDate, rec.CheckOutDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

const enquiryColumns = `e.id, e.company_id, e.tenant_id, e.property_id, e.room_id, e.status, e.active,
	e.gender, e.food_preference, e.type, e.message, e.check_in_date, e.check_out_date, e.created_at, e.updated_at`

func scanEnquiry(scan func(...interface{}) error) (model.Enquiry, error) {
	var e model.Enquiry
	var roomID sql.NullInt64
	err := scan(&e.ID, &e.CompanyID, &e.TenantID, &e.PropertyID, &roomID, &e.StatusCode, &e.Active,
		&e.Gender, &e.FoodPreference, &e.Type, &e.Message, &e.CheckInDate, &e.CheckOutDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	if roomID.Valid {
		rid := uint64(roomID.Int64)
		e.RoomID = &rid
	}
	return e, nil
}

// GetByID loads one enquiry with its latest checkout request.  It
// returns sql.ErrNoRows when the enquiry does not exist and
// ErrForbidden when it belongs to a different company.
func (r *EnquiryRepo) GetByID(ctx context.Context, id, companyID uint64) (model.Enquiry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+enquiryColumns+` FROM enquiries e WHERE e.id = ?`, id)
	e, err := scanEnquiry(row.Scan)
	if err != nil {
		return e, err
	}
	if e.CompanyID != companyID {
		return model.Enquiry{}, ErrForbidden
	}
	if err := r.populateCheckouts(ctx, []*model.Enquiry{&e}); err != nil {
		return e, err
	}
	return e, nil
}

// GetForTenant loads one enquiry on behalf of the tenant who submitted
// it.  ErrForbidden is returned when the enquiry belongs to another
// tenant.
func (r *EnquiryRepo) GetForTenant(ctx context.Context, id, tenantID uint64) (model.Enquiry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+enquiryColumns+` FROM enquiries e WHERE e.id = ?`, id)
	e, err := scanEnquiry(row.Scan)
	if err != nil {
		return e, err
	}
	if e.TenantID != tenantID {
		return model.Enquiry{}, ErrForbidden
	}
	if err := r.populateCheckouts(ctx, []*model.Enquiry{&e}); err != nil {
		return e, err
	}
	return e, nil
}

// ListByCompany returns all enquiries targeting a company's PGs,
// newest first, with their latest checkout request attached.
// Presentation filters are applied by the caller.
func (r *EnquiryRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.Enquiry, error) {
	return r.list(ctx, `e.company_id = ?`, companyID)
}

// ListByTenant returns all enquiries a tenant has submitted, newest
// first.
func (r *EnquiryRepo) ListByTenant(ctx context.Context, tenantID uint64) ([]model.Enquiry, error) {
	return r.list(ctx, `e.tenant_id = ?`, tenantID)
}

func (r *EnquiryRepo) list(ctx context.Context, where string, arg interface{}) ([]model.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+enquiryColumns+` FROM enquiries e WHERE `+where+` ORDER BY e.created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	enquiries := make([]model.Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	refs := make([]*model.Enquiry, len(enquiries))
	for i := range enquiries {
		refs[i] = &enquiries[i]
	}
	if err := r.populateCheckouts(ctx, refs); err != nil {
		return nil, err
	}
	return enquiries, nil
}

// populateCheckouts attaches the newest checkout request of each
// enquiry in a single query.
func (r *EnquiryRepo) populateCheckouts(ctx context.Context, enquiries []*model.Enquiry) error {
	if len(enquiries) == 0 {
		return nil
	}
	ids := make([]interface{}, 0, len(enquiries))
	placeholders := make([]string, 0, len(enquiries))
	index := make(map[uint64]*model.Enquiry, len(enquiries))
	for _, e := range enquiries {
		ids = append(ids, e.ID)
		placeholders = append(placeholders, "?")
		index[e.ID] = e
	}
	q := `SELECT id, enquiry_id, status, requested_date, reason, reject_reason, created_at, updated_at
	      FROM checkout_requests
	      WHERE enquiry_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY enquiry_id, id`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cr model.CheckoutRequest
		var rejectReason sql.NullString
		if err := rows.Scan(&cr.ID, &cr.EnquiryID, &cr.Status, &cr.RequestedDate,
			&cr.Reason, &rejectReason, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return err
		}
		if rejectReason.Valid {
			rr := rejectReason.String
			cr.RejectReason = &rr
		}
		if e, ok := index[cr.EnquiryID]; ok {
			// Rows arrive in id order, so the last one seen per
			// enquiry is the newest.
			c := cr
			e.Checkout = &c
		}
	}
	return rows.Err()
}

// Resolve commits a landlord decision on a pending enquiry.  The whole
// transition runs in one transaction: the enquiry row is locked and
// re-checked, and when accepting a room enquiry the room is locked,
// verified available and free of any other accepted active enquiry,
// then flipped to booked.  ErrConflict is returned whenever the state
// moved since the caller last looked (enquiry already decided, room
// booked by another actor).
func (r *EnquiryRepo) Resolve(ctx context.Context, enquiryID, companyID uint64, targetCode int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var actualCompany uint64
	var status int
	var active bool
	var roomID sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT company_id, status, active, room_id FROM enquiries WHERE id = ? FOR UPDATE`,
		enquiryID).Scan(&actualCompany, &status, &active, &roomID)
	if err != nil {
		return err
	}
	if actualCompany != companyID {
		return ErrForbidden
	}
	if status == targetCode {
		// Concurrent duplicate already landed the same decision.
		committed = true
		return tx.Commit()
	}
	if status != model.EnquiryCodePending || !active {
		return ErrConflict
	}

	if targetCode == model.EnquiryCodeAccepted && roomID.Valid {
		var availability string
		err = tx.QueryRowContext(ctx,
			`SELECT availability FROM rooms WHERE id = ? FOR UPDATE`, roomID.Int64).Scan(&availability)
		if err != nil {
			return err
		}
		if availability != model.RoomAvailable {
			return ErrConflict
		}
		var occupied int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM enquiries WHERE room_id = ? AND status = ? AND active = 1 AND id <> ?`,
			roomID.Int64, model.EnquiryCodeAccepted, enquiryID).Scan(&occupied)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ErrConflict
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE rooms SET availability = ? WHERE id = ?`, model.RoomBooked, roomID.Int64); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE enquiries SET status = ? WHERE id = ?`, targetCode, enquiryID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Inactivate sets the administrative active flag to false.  When the
// enquiry is an accepted room tenancy, the room is released back to
// available in the same transaction.  Inactivating an already inactive
// enquiry is a no-op; there is no reactivate.
func (r *EnquiryRepo) Inactivate(ctx context.Context, enquiryID, companyID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var actualCompany uint64
	var status int
	var active bool
	var roomID sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT company_id, status, active, room_id FROM enquiries WHERE id = ? FOR UPDATE`,
		enquiryID).Scan(&actualCompany, &status, &active, &roomID)
	if err != nil {
		return err
	}
	if actualCompany != companyID {
		return ErrForbidden
	}
	if !active {
		committed = true
		return tx.Commit()
	}

	if status == model.EnquiryCodeAccepted && roomID.Valid {
		if _, err := tx.ExecContext(ctx,
			`UPDATE rooms SET availability = ? WHERE id = ?`, model.RoomAvailable, roomID.Int64); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE enquiries SET active = 0 WHERE id = ?`, enquiryID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
