package booking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// NoSeasonLabel is the breakdown label used for nights no season
// covers; the coefficient for such nights is 1.0.
const NoSeasonLabel = "Hors saison"

// NightRate is one line of a stay's per-night price breakdown.  Date
// is rendered as YYYY-MM-DD, like every other date on the wire.
type NightRate struct {
	Date        string  `json:"date"`
	Season      string  `json:"season"`
	Coefficient float64 `json:"coefficient"`
	Price       float64 `json:"price"`
}

// StayQuote is the detailed result of pricing a stay.  Nightly holds
// one entry per night in check-in order.  Total is computed from the
// unrounded nightly prices and rounded once at the end, so it can
// differ from the sum of the displayed per-night figures by up to a
// cent.
type StayQuote struct {
	RoomCode           string      `json:"room_code"`
	RoomType           string      `json:"room_type"`
	CheckIn            string      `json:"check_in"`
	CheckOut           string      `json:"check_out"`
	Nights             int64       `json:"nights"`
	BasePrice          float64     `json:"base_price"`
	AverageCoefficient float64     `json:"average_coefficient"`
	Total              float64     `json:"total"`
	Nightly            []NightRate `json:"nightly"`
}

// PriceService computes stay prices by walking each night of a stay
// and applying the coefficient of the season covering it.
type PriceService struct {
	rooms   RoomStore
	seasons SeasonStore
	events  event.Publisher
	now     func() time.Time
}

// NewPriceService constructs a PriceService.  events may be nil.
func NewPriceService(rooms RoomStore, seasons SeasonStore, events event.Publisher) *PriceService {
	return &PriceService{rooms: rooms, seasons: seasons, events: events, now: func() time.Time { return time.Now().UTC() }}
}

// ComputeStayPrice prices the stay [checkIn, checkOut) for the given
// room and returns the detailed quote.  It fails with ErrInvalidRange
// unless checkIn is strictly before checkOut and with ErrNotFound when
// the room does not exist.  A PriceCalculated notification is emitted
// on success.
func (s *PriceService) ComputeStayPrice(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (*StayQuote, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
	}
	nights := daysBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidRange
	}

	quote := &StayQuote{
		RoomCode:  room.Code,
		RoomType:  room.Type,
		CheckIn:   checkIn.Format(dateLayout),
		CheckOut:  checkOut.Format(dateLayout),
		Nights:    nights,
		BasePrice: room.BasePrice,
		Nightly:   make([]NightRate, 0, nights),
	}
	var total, coeffSum float64
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		price := room.BasePrice
		coeff := 1.0
		name := NoSeasonLabel

		season, err := s.seasons.FindCovering(ctx, d)
		if err != nil {
			return nil, err
		}
		if season != nil {
			coeff = season.Coefficient
			name = season.Name
			price *= coeff
		}

		quote.Nightly = append(quote.Nightly, NightRate{
			Date:        d.Format(dateLayout),
			Season:      name,
			Coefficient: coeff,
			Price:       round2(price),
		})
		total += price
		coeffSum += coeff
	}
	quote.AverageCoefficient = round2(coeffSum / float64(nights))
	quote.Total = round2(total)

	publish(ctx, s.events, event.PriceCalculated{
		RoomID:     room.ID,
		RoomCode:   room.Code,
		RoomType:   room.Type,
		CheckIn:    checkIn.Format(dateLayout),
		CheckOut:   checkOut.Format(dateLayout),
		Nights:     nights,
		Total:      quote.Total,
		OccurredAt: s.now(),
	})
	return quote, nil
}

// StayTotal prices the stay and returns only the rounded total.  Same
// walk as ComputeStayPrice but without the breakdown and without a
// notification.
func (s *PriceService) StayTotal(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (float64, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if room == nil {
		return 0, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
	}
	if daysBetween(checkIn, checkOut) <= 0 {
		return 0, ErrInvalidRange
	}
	var total float64
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		price := room.BasePrice
		season, err := s.seasons.FindCovering(ctx, d)
		if err != nil {
			return 0, err
		}
		if season != nil {
			price *= season.Coefficient
		}
		total += price
	}
	return round2(total), nil
}

// round2 rounds to two decimal places, ties away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int64 {
	return int64(b.Sub(a) / (24 * time.Hour))
}
