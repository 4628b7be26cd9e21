// Package event defines the domain events emitted by the booking
// engine and the publish-only port used to deliver them.  Events are
// immutable records of an entity's key fields plus a timestamp; no
// acknowledgement is expected by the emitting code.
package event

import "time"

// Event is implemented by every domain event.  Kind returns a stable
// dotted identifier used as the routing/log label for the event.
type Event interface {
	Kind() string
}

// RoomCreated is emitted after a room has been persisted.
type RoomCreated struct {
	RoomID     uint64    `json:"room_id"`
	Code       string    `json:"code"`
	Type       string    `json:"type"`
	BasePrice  float64   `json:"base_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (RoomCreated) Kind() string { return "room.created" }

// SeasonCreated is emitted after a season has been persisted.
type SeasonCreated struct {
	SeasonID    uint64    `json:"season_id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Coefficient float64   `json:"coefficient"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (SeasonCreated) Kind() string { return "season.created" }

// PriceCalculated is emitted after the pricing engine has produced a
// detailed quote for a stay.
type PriceCalculated struct {
	RoomID     uint64    `json:"room_id"`
	RoomCode   string    `json:"room_code"`
	RoomType   string    `json:"room_type"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int64     `json:"nights"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (PriceCalculated) Kind() string { return "price.calculated" }

// ReservationCreated is emitted after a reservation has been persisted.
type ReservationCreated struct {
	ReservationID uint64    `json:"reservation_id"`
	RoomID        uint64    `json:"room_id"`
	GuestID       uint64    `json:"guest_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (ReservationCreated) Kind() string { return "reservation.created" }

// ReservationCancelled is emitted when a reservation is cancelled,
// including the implicit cancellation that precedes a deletion.
type ReservationCancelled struct {
	ReservationID uint64    `json:"reservation_id"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (ReservationCancelled) Kind() string { return "reservation.cancelled" }

// PaymentCreated is emitted after a payment has been persisted through
// the payment lifecycle.
type PaymentCreated struct {
	PaymentID     uint64    `json:"payment_id"`
	ReservationID uint64    `json:"reservation_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (PaymentCreated) Kind() string { return "payment.created" }

// PaymentStatusChanged is emitted when an update moves a payment to a
// different status.
type PaymentStatusChanged struct {
	PaymentID  uint64    `json:"payment_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (PaymentStatusChanged) Kind() string { return "payment.status_changed" }
