package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
)

// PricingHandler exposes stay price quotes over HTTP.
type PricingHandler struct {
	Prices *booking.PriceService
}

func NewPricingHandler(s *booking.PriceService) *PricingHandler { return &PricingHandler{Prices: s} }

// Quote prices a stay for a room.  The range is half open: the
// check-out night is not billed.
//
//	GET /rooms/:id/quote?checkIn=2025-07-01&checkOut=2025-07-04
func (h *PricingHandler) Quote(c echo.Context) error {
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
	quote, err := h.Prices.ComputeStayPrice(c.Request().Context(), id, checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}
