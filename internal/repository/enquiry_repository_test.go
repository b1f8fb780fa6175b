package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

const (
	selectEnquiryForUpdate = `SELECT company_id, status, active, room_id FROM enquiries WHERE id = \? FOR UPDATE`
	selectRoomForUpdate    = `SELECT availability FROM rooms WHERE id = \? FOR UPDATE`
	countAcceptedOnRoom    = `SELECT COUNT\(\*\) FROM enquiries WHERE room_id = \? AND status = \? AND active = 1 AND id <> \?`
)

func enquiryRow(companyID uint64, status int, active bool, roomID interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"company_id", "status", "active", "room_id"}).
		AddRow(companyID, status, active, roomID)
}

func TestResolveAcceptBooksRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodePending, true, int64(33)))
	mock.ExpectQuery(selectRoomForUpdate).WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows([]string{"availability"}).AddRow(model.RoomAvailable))
	mock.ExpectQuery(countAcceptedOnRoom).WithArgs(int64(33), model.EnquiryCodeAccepted, uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET availability = ? WHERE id = ?`)).
		WithArgs(model.RoomBooked, int64(33)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE enquiries SET status = ? WHERE id = ?`)).
		WithArgs(model.EnquiryCodeAccepted, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 7, 1, model.EnquiryCodeAccepted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAcceptConflictsOnBookedRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodePending, true, int64(33)))
	mock.ExpectQuery(selectRoomForUpdate).WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows([]string{"availability"}).AddRow(model.RoomBooked))
	mock.ExpectRollback()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 7, 1, model.EnquiryCodeAccepted)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAcceptConflictsOnOccupiedRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The room still reads available but another accepted active
	// enquiry already references it: the count check holds the
	// one-tenancy-per-room invariant.
	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodePending, true, int64(33)))
	mock.ExpectQuery(selectRoomForUpdate).WithArgs(int64(33)).
		WillReturnRows(sqlmock.NewRows([]string{"availability"}).AddRow(model.RoomAvailable))
	mock.ExpectQuery(countAcceptedOnRoom).WithArgs(int64(33), model.EnquiryCodeAccepted, uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 7, 1, model.EnquiryCodeAccepted)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlreadyInTargetStatusIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodeAccepted, true, int64(33)))
	mock.ExpectCommit()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 7, 1, model.EnquiryCodeAccepted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWrongCompanyForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(2, model.EnquiryCodePending, true, nil))
	mock.ExpectRollback()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 7, 1, model.EnquiryCodeAccepted)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRejectSkipsRoomWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(9)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodePending, true, int64(33)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE enquiries SET status = ? WHERE id = ?`)).
		WithArgs(model.EnquiryCodeRejected, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEnquiryRepo(db)
	err = repo.Resolve(context.Background(), 9, 1, model.EnquiryCodeRejected)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInactivateReleasesRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodeAccepted, true, int64(33)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET availability = ? WHERE id = ?`)).
		WithArgs(model.RoomAvailable, int64(33)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE enquiries SET active = 0 WHERE id = ?`)).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEnquiryRepo(db)
	err = repo.Inactivate(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInactivateAlreadyInactiveIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectEnquiryForUpdate).WithArgs(uint64(7)).
		WillReturnRows(enquiryRow(1, model.EnquiryCodeAccepted, false, int64(33)))
	mock.ExpectCommit()

	repo := NewEnquiryRepo(db)
	err = repo.Inactivate(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
