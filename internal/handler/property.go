package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/allocator"
	"github.com/webroomers/pg-booking-service/internal/repository"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

// PropertyHandler serves property and room listings for the enquiry
// flow.  Tenants browse here before submitting; owners use the same
// routes to review their inventory.
type PropertyHandler struct {
	Properties *repository.PropertyRepo
	Rooms      *repository.RoomRepo
}

func NewPropertyHandler(p *repository.PropertyRepo, r *repository.RoomRepo) *PropertyHandler {
	if p == nil || r == nil {
		panic("nil repository passed to NewPropertyHandler")
	}
	return &PropertyHandler{Properties: p, Rooms: r}
}

type propertyView struct {
	PGID       uint64 `json:"pg_id"`
	CompanyID  uint64 `json:"company_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	LockInDays int    `json:"lock_in_days"`
}

type roomView struct {
	RoomID           uint64 `json:"room_id"`
	PGID             uint64 `json:"pg_id"`
	Name             string `json:"name"`
	RoomAvailability string `json:"room_availability"`
	Price            int64  `json:"price"`
	SecurityDeposit  int64  `json:"security_deposit"`
	Facilities       string `json:"facilities"`
	CreatedAt        string `json:"created_at"`
}

// ListProperties handles GET /v1/pgs.
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	props, err := h.Properties.ListByCompany(c.Request().Context(), companyID)
	if err != nil {
		return domainError(c, err)
	}
	views := make([]propertyView, 0, len(props))
	for _, p := range props {
		views = append(views, propertyView{
			PGID:       p.ID,
			CompanyID:  p.CompanyID,
			Name:       p.Name,
			Address:    p.Address,
			LockInDays: p.LockInDays,
		})
	}
	return ok(c, http.StatusOK, "ok", echo.Map{"pgs": views})
}

// ListRooms handles GET /v1/pgs/:id/rooms.  Every room is returned with
// its room_availability so clients can grey out booked rooms; the
// selectable subset is what AttemptSelect would accept.
func (h *PropertyHandler) ListRooms(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	pgID, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	rooms, err := h.Rooms.ListByProperty(c.Request().Context(), pgID, companyID)
	if err != nil {
		return domainError(c, err)
	}
	views := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, roomView{
			RoomID:           r.ID,
			PGID:             r.PropertyID,
			Name:             r.Name,
			RoomAvailability: r.Availability,
			Price:            r.PriceRupees,
			SecurityDeposit:  r.SecurityDeposit,
			Facilities:       r.Facilities,
			CreatedAt:        utils.FormatDate(r.CreatedAt),
		})
	}
	selectable := allocator.ListSelectable(rooms)
	ids := make([]uint64, 0, len(selectable))
	for _, r := range selectable {
		ids = append(ids, r.ID)
	}
	return ok(c, http.StatusOK, "ok", echo.Map{"rooms": views, "selectable_room_ids": ids})
}
