package model

import "time"

// ReservationStatus enumerates the states of the reservation
// lifecycle.  The set is closed: transitions happen only through
// CanTransitionTo and the lifecycle services.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Valid reports whether s is one of the defined reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s
// to next.  Allowed moves: PENDING -> CONFIRMED -> COMPLETED, and
// PENDING|CONFIRMED -> CANCELLED.  CANCELLED and COMPLETED are
// terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCompleted || next == ReservationCancelled
	case ReservationCompleted, ReservationCancelled:
		return false
	}
	return false
}

// Reservation records a guest's stay in a room over the half-open date
// range [CheckIn, CheckOut): a reservation from D1 to D2 books the
// nights D1 .. D2-1 and frees the room on D2.  Two non-cancelled
// reservations for the same room must never overlap in time.
//
// Fields:
//  ID          - primary key identifier.
//  RoomID      - room being booked.
//  GuestID     - user who made the reservation.
//  CheckIn     - arrival date (inclusive).
//  CheckOut    - departure date (exclusive); must be after CheckIn.
//  Status      - state of the reservation lifecycle.
//  CreatedAt   - creation timestamp.
//  CancelledAt - set when the status becomes CANCELLED, never cleared.
type Reservation struct {
	ID          uint64            // reservations.id
	RoomID      uint64            // reservations.room_id
	GuestID     uint64            // reservations.guest_id
	CheckIn     time.Time         // reservations.check_in (date only)
	CheckOut    time.Time         // reservations.check_out (date only)
	Status      ReservationStatus // reservations.status
	CreatedAt   time.Time         // reservations.created_at
	CancelledAt *time.Time        // reservations.cancelled_at (nullable)
}

// Nights returns the number of nights booked, i.e. the number of days
// between CheckIn and CheckOut.
func (r *Reservation) Nights() int64 {
	return int64(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

// Overlaps reports whether the reservation's stay intersects the
// half-open range [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.CheckIn.Before(end) && r.CheckOut.After(start)
}
