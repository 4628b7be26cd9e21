package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// PaymentHandler exposes the payment lifecycle over HTTP.
type PaymentHandler struct {
	Payments *booking.PaymentService
}

func NewPaymentHandler(s *booking.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: s}
}

type paymentCreateReq struct {
	ReservationID uint64  `json:"reservationId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
}

type paymentUpdateReq struct {
	Amount *float64 `json:"amount"`
	Method *string  `json:"method"`
	Status *string  `json:"status"`
	PaidAt *string  `json:"paidAt"`
}

type paymentResp struct {
	ID            uint64    `json:"id"`
	ReservationID uint64    `json:"reservationId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
}

func toPaymentResp(p *model.Payment) paymentResp {
	return paymentResp{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
	}
}

func toPaymentResps(ps []model.Payment) []paymentResp {
	out := make([]paymentResp, 0, len(ps))
	for i := range ps {
		out = append(out, toPaymentResp(&ps[i]))
	}
	return out
}

// Create records a payment for an existing reservation.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := &model.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        model.PaymentStatus(req.Status),
	}
	p, err := h.Payments.Create(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentResp(p))
}

// Update applies a partial update; omitted fields keep their values.
// Status changes cascade onto the linked reservation.
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req paymentUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := booking.PaymentUpdate{Amount: req.Amount, Method: req.Method}
	if req.Status != nil {
		st := model.PaymentStatus(*req.Status)
		upd.Status = &st
	}
	if req.PaidAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "paidAt must be RFC 3339"})
		}
		upd.PaidAt = &t
	}
	p, err := h.Payments.Update(c.Request().Context(), id, upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// Delete removes a payment record.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Payments.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns a single payment by id.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	p, err := h.Payments.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// List returns payments, optionally filtered with ?reservationId=5.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if v := c.QueryParam("reservationId"); v != "" {
		resID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservationId"})
		}
		ps, err := h.Payments.ListByReservation(ctx, resID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toPaymentResps(ps))
	}
	ps, err := h.Payments.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResps(ps))
}
