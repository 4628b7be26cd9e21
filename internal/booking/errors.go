package booking

import "errors"

// Sentinel errors returned by the booking services.  All of them are
// caller-recoverable: validation happens before any mutation, so a
// failed call never leaves a partial write behind.  Handlers match
// them with errors.Is to choose an HTTP status.
var (
	// ErrNotFound signals that an entity (room, season, reservation
	// or payment) does not exist under the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRange signals an unusable date range.  Creation and
	// pricing require checkIn strictly before checkOut; the
	// availability check only rejects checkIn after checkOut.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrRoomUnavailable signals that the room is flagged out of
	// service and can never be booked, regardless of date conflicts.
	ErrRoomUnavailable = errors.New("room is not available for booking")

	// ErrDoubleBooking signals that an existing reservation for the
	// room overlaps the requested stay.
	ErrDoubleBooking = errors.New("room is already booked for the selected dates")

	// ErrInvalidTransition signals a status change that the lifecycle
	// does not permit, such as reviving a cancelled reservation.
	ErrInvalidTransition = errors.New("invalid status transition")
)
