package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/handler"
	"github.com/webroomers/pg-booking-service/internal/repository"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

const testSecret = "router-test-secret"

// passthrough stands in for the response cache in route tests.
func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

func newBrowseServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	enqRepo := repository.NewEnquiryRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	propRepo := repository.NewPropertyRepo(db)
	permRepo := repository.NewPermissionRepo(db)
	coRepo := repository.NewCheckoutRepo(db)
	payRepo := repository.NewPaymentRepo(db)
	g := guard.New()

	propH := handler.NewPropertyHandler(propRepo, roomRepo)
	enqH := handler.NewEnquiryHandler(config.Config{}, enqRepo, roomRepo, propRepo, permRepo, payRepo, g)
	coH := handler.NewCheckoutHandler(config.Config{}, coRepo, enqRepo, propRepo, permRepo, g)
	payH := handler.NewPaymentHandler(config.Config{}, payRepo, enqRepo, permRepo, g)

	e := echo.New()
	RegisterTenant(e, propH, enqH, coH, payH, testSecret, passthrough)
	return e, mock
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 5, role, 1, 60)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func emptyPGRows() *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "company_id", "name", "address", "lock_in_days", "created_at"})
}

func TestBrowseRoutesOpenToStaff(t *testing.T) {
	for _, role := range []string{"OWNER", "SUBUSER", "TENANT"} {
		t.Run(role, func(t *testing.T) {
			e, mock := newBrowseServer(t)
			mock.ExpectQuery(`FROM properties WHERE company_id = \?`).
				WithArgs(uint64(1)).
				WillReturnRows(emptyPGRows().AddRow(3, 1, "Sunrise PG", "12 Hill Rd", 15, time.Now()))

			req := httptest.NewRequest(http.MethodGet, "/v1/pgs", nil)
			req.Header.Set(echo.HeaderAuthorization, bearerFor(t, role))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnquirySubmissionStaysTenantOnly(t *testing.T) {
	e, mock := newBrowseServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/enquiries", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, "OWNER"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
