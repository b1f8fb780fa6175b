package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/model"
	"github.com/webroomers/pg-booking-service/internal/repository"
)

const (
	selectProperty = `FROM properties WHERE id = \? LIMIT 1`
	selectRoom     = `FROM rooms WHERE id = \? LIMIT 1`
)

var now = time.Now().UTC()

func newSubmitContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/enquiries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(12))
	c.Set("company_id", uint64(1))
	c.Set("role", model.RoleTenant)
	return c, rec
}

func newEnquiryHandler(t *testing.T, g *guard.Guard) (*EnquiryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewEnquiryHandler(config.Config{},
		repository.NewEnquiryRepo(db),
		repository.NewRoomRepo(db),
		repository.NewPropertyRepo(db),
		repository.NewPermissionRepo(db),
		repository.NewPaymentRepo(db),
		g)
	return h, mock
}

const roomSubmitBody = `{"pg_id":3,"room_id":9,"type":"room",` +
	`"check_in_date":"2026-09-01","check_out_date":"2026-12-01"}`

func TestSubmitRoomEnquirySerializedPerRoom(t *testing.T) {
	g := guard.New()
	h, mock := newEnquiryHandler(t, g)

	// A second tap on the same room while the first submission is still
	// in flight must be rejected locally, before any storage access.
	require.True(t, g.TryAcquire(guard.Key("room", 9)))
	defer g.Release(guard.Key("room", 9))

	c, rec := newSubmitContext(t, roomSubmitBody)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRoomEnquiryInsertsAndReleasesGuard(t *testing.T) {
	g := guard.New()
	h, mock := newEnquiryHandler(t, g)

	mock.ExpectQuery(selectProperty).WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "company_id", "name", "address", "lock_in_days", "created_at"}).
			AddRow(3, 1, "Sunrise PG", "12 Hill Rd", 15, now))
	mock.ExpectQuery(selectRoom).WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "property_id", "name", "availability", "price_rupees",
				"security_deposit", "facilities", "created_at", "updated_at"}).
			AddRow(9, 3, "201-B", model.RoomAvailable, 7000, 10000, "wifi", now, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO enquiries`)).
		WillReturnResult(sqlmock.NewResult(41, 1))

	c, rec := newSubmitContext(t, roomSubmitBody)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The guard must be free again once the request finishes.
	assert.True(t, g.TryAcquire(guard.Key("room", 9)))
	g.Release(guard.Key("room", 9))
}

func TestSubmitRoomEnquiryReleasesGuardAfterRejection(t *testing.T) {
	g := guard.New()
	h, mock := newEnquiryHandler(t, g)

	mock.ExpectQuery(selectProperty).WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "company_id", "name", "address", "lock_in_days", "created_at"}).
			AddRow(3, 1, "Sunrise PG", "12 Hill Rd", 15, now))
	mock.ExpectQuery(selectRoom).WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "property_id", "name", "availability", "price_rupees",
				"security_deposit", "facilities", "created_at", "updated_at"}).
			AddRow(9, 3, "201-B", model.RoomBooked, 7000, 10000, "wifi", now, now))

	c, rec := newSubmitContext(t, roomSubmitBody)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Release on failure too: the room must not stay locked.
	assert.True(t, g.TryAcquire(guard.Key("room", 9)))
	g.Release(guard.Key("room", 9))
}

func TestSubmitPGEnquirySkipsRoomGuard(t *testing.T) {
	g := guard.New()
	h, mock := newEnquiryHandler(t, g)

	// Holding a room key does not affect whole-PG enquiries.
	require.True(t, g.TryAcquire(guard.Key("room", 9)))
	defer g.Release(guard.Key("room", 9))

	mock.ExpectQuery(selectProperty).WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "company_id", "name", "address", "lock_in_days", "created_at"}).
			AddRow(3, 1, "Sunrise PG", "12 Hill Rd", 15, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO enquiries`)).
		WillReturnResult(sqlmock.NewResult(42, 1))

	body := `{"pg_id":3,"type":"pg","check_in_date":"2026-09-01","check_out_date":"2026-12-01"}`
	c, rec := newSubmitContext(t, body)
	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
