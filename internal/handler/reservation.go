package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	Reservations *booking.ReservationService
}

func NewReservationHandler(s *booking.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: s}
}

type reservationCreateReq struct {
	RoomID        uint64 `json:"roomId"`
	GuestID       uint64 `json:"guestId"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	PaymentMethod string `json:"paymentMethod"`
}

type reservationUpdateReq struct {
	RoomID   uint64 `json:"roomId"`
	GuestID  uint64 `json:"guestId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

type cancelReq struct {
	Reason string `json:"reason"`
}

type reservationResp struct {
	ID          uint64     `json:"id"`
	RoomID      uint64     `json:"roomId"`
	GuestID     uint64     `json:"guestId"`
	CheckIn     string     `json:"checkIn"`
	CheckOut    string     `json:"checkOut"`
	Status      string     `json:"status"`
	Nights      int64      `json:"nights"`
	CreatedAt   time.Time  `json:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:          r.ID,
		RoomID:      r.RoomID,
		GuestID:     r.GuestID,
		CheckIn:     r.CheckIn.Format(dateLayout),
		CheckOut:    r.CheckOut.Format(dateLayout),
		Status:      string(r.Status),
		Nights:      r.Nights(),
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	}
}

func toReservationResps(rs []model.Reservation) []reservationResp {
	out := make([]reservationResp, 0, len(rs))
	for i := range rs {
		out = append(out, toReservationResp(&rs[i]))
	}
	return out
}

// Create books a stay.  Regular users always book for themselves; the
// guestId field is honoured only for admins.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be YYYY-MM-DD"})
	}

	guestID := req.GuestID
	if role, _ := c.Get("role").(string); role != "ADMIN" || guestID == 0 {
		uid, err := currentUserID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		guestID = uid
	}

	res := &model.Reservation{
		RoomID:   req.RoomID,
		GuestID:  guestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
	res, err = h.Reservations.Create(c.Request().Context(), res, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// Update replaces the mutable fields of a reservation.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req reservationUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be YYYY-MM-DD"})
	}

	res := &model.Reservation{
		RoomID:   req.RoomID,
		GuestID:  req.GuestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   model.ReservationStatus(req.Status),
	}
	res, err = h.Reservations.Update(c.Request().Context(), id, res)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Cancel moves a reservation into CANCELLED and stamps the time.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Reservations.Cancel(c.Request().Context(), id, req.Reason); err != nil {
		return respondError(c, err)
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Delete removes a reservation record entirely.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns a single reservation by id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// List returns reservations.  Optional filters: ?status=PENDING,
// ?roomId=3, ?guestId=7.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if s := c.QueryParam("status"); s != "" {
		status := model.ReservationStatus(s)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		rs, err := h.Reservations.ListByStatus(ctx, status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toReservationResps(rs))
	}
	if v := c.QueryParam("roomId"); v != "" {
		roomID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid roomId"})
		}
		rs, err := h.Reservations.ListByRoom(ctx, roomID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toReservationResps(rs))
	}
	if v := c.QueryParam("guestId"); v != "" {
		guestID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guestId"})
		}
		rs, err := h.Reservations.ListByGuest(ctx, guestID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toReservationResps(rs))
	}
	rs, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResps(rs))
}

// Mine returns the authenticated user's own reservations.
func (h *ReservationHandler) Mine(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rs, err := h.Reservations.ListByGuest(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResps(rs))
}

// Conflicts lists the reservations blocking a room over a date range,
// cancelled ones included.
//
//	GET /admin/rooms/:id/conflicts?checkIn=2025-07-01&checkOut=2025-07-04
func (h *ReservationHandler) Conflicts(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkIn, err := parseDate(c.QueryParam("checkIn"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("checkOut"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be YYYY-MM-DD"})
	}
	rs, err := h.Reservations.ListConflicting(c.Request().Context(), id, checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResps(rs))
}

// Availability reports whether a room is free over a date range.
//
//	GET /rooms/:id/availability?checkIn=2025-07-01&checkOut=2025-07-04
func (h *ReservationHandler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	checkIn, err := parseDate(c.QueryParam("checkIn"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkIn must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("checkOut"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkOut must be YYYY-MM-DD"})
	}
	free, err := h.Reservations.CheckAvailability(c.Request().Context(), id, checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"roomId":    id,
		"checkIn":   checkIn.Format(dateLayout),
		"checkOut":  checkOut.Format(dateLayout),
		"available": free,
	})
}
