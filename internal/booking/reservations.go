package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// DefaultPaymentMethod is recorded on payments created without an
// explicit method.
const DefaultPaymentMethod = "NON_DEFINI"

// ReservationService drives the reservation lifecycle: date
// validation, availability and conflict checks, creation, updates,
// cancellation and deletion, plus the pending payment created
// alongside every new reservation.
//
// Conflict checks are status-blind: a cancelled reservation still
// blocks new bookings for its dates.  This mirrors the historical
// behaviour of the conflict query and is pinned by tests; freeing the
// dates requires deleting the cancelled reservation.
type ReservationService struct {
	reservations ReservationStore
	rooms        RoomStore
	payments     PaymentStore
	events       event.Publisher
	locks        *roomLocks
	now          func() time.Time
}

// NewReservationService constructs a ReservationService.  events may
// be nil.
func NewReservationService(reservations ReservationStore, rooms RoomStore, payments PaymentStore, events event.Publisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		payments:     payments,
		events:       events,
		locks:        newRoomLocks(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create books the stay described by res and persists a pending
// payment for it.  The sequence is: validate the range (checkIn
// strictly before checkOut), require the room to exist and to be
// available, reject overlapping reservations, persist with PENDING
// status, emit ReservationCreated, then create a pending payment for
// basePrice x nights (minimum one night, flat, not the season-adjusted
// pricing-engine total).
//
// The conflict check and the insert are serialized per room so that
// concurrent requests cannot both pass the check.
func (s *ReservationService) Create(ctx context.Context, res *model.Reservation, paymentMethod string) (*model.Reservation, error) {
	if !res.CheckIn.Before(res.CheckOut) {
		return nil, ErrInvalidRange
	}

	unlock := s.locks.acquire(res.RoomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %d: %w", res.RoomID, ErrNotFound)
	}
	if !room.Available {
		return nil, ErrRoomUnavailable
	}

	conflicts, err := s.reservations.FindConflicting(ctx, res.RoomID, res.CheckIn, res.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrDoubleBooking
	}

	if res.Status == "" {
		res.Status = model.ReservationPending
	}
	if !res.Status.Valid() {
		return nil, ErrInvalidTransition
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = s.now()
	}
	res.ID = 0
	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	publish(ctx, s.events, event.ReservationCreated{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		GuestID:       res.GuestID,
		CheckIn:       res.CheckIn.Format(dateLayout),
		CheckOut:      res.CheckOut.Format(dateLayout),
		Status:        string(res.Status),
		OccurredAt:    s.now(),
	})

	if err := s.createPaymentFor(ctx, res, room, paymentMethod); err != nil {
		return nil, err
	}
	return res, nil
}

// createPaymentFor persists the pending payment that accompanies a
// new reservation.  The amount is the flat basePrice x nights with a
// one-night minimum; seasons do not apply here.
func (s *ReservationService) createPaymentFor(ctx context.Context, res *model.Reservation, room *model.Room, method string) error {
	nights := daysBetween(res.CheckIn, res.CheckOut)
	if nights <= 0 {
		nights = 1
	}
	if method == "" {
		method = DefaultPaymentMethod
	}
	p := &model.Payment{
		ReservationID: res.ID,
		Amount:        room.BasePrice * float64(nights),
		Method:        method,
		Status:        model.PaymentPending,
		PaidAt:        s.now(),
	}
	return s.payments.Save(ctx, p)
}

// Update replaces the mutable fields of an existing reservation.  The
// date range is re-validated, the conflict check is re-run (excluding
// the reservation itself) when the room or the dates changed, and a
// status change must follow the lifecycle.  Transitioning into
// CANCELLED stamps the cancellation time.
func (s *ReservationService) Update(ctx context.Context, id uint64, res *model.Reservation) (*model.Reservation, error) {
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if !res.CheckIn.Before(res.CheckOut) {
		return nil, ErrInvalidRange
	}
	if !res.Status.Valid() {
		return nil, ErrInvalidTransition
	}
	if !existing.Status.CanTransitionTo(res.Status) {
		return nil, fmt.Errorf("reservation %d: %s -> %s: %w", id, existing.Status, res.Status, ErrInvalidTransition)
	}

	datesChanged := !res.CheckIn.Equal(existing.CheckIn) || !res.CheckOut.Equal(existing.CheckOut)
	roomChanged := res.RoomID != existing.RoomID
	if datesChanged || roomChanged {
		unlock := s.locks.acquire(res.RoomID)
		defer unlock()

		conflicts, err := s.reservations.FindConflicting(ctx, res.RoomID, res.CheckIn, res.CheckOut)
		if err != nil {
			return nil, err
		}
		for _, c := range conflicts {
			if c.ID != id {
				return nil, ErrDoubleBooking
			}
		}
	}

	res.ID = id
	res.CreatedAt = existing.CreatedAt
	res.CancelledAt = existing.CancelledAt
	if res.Status == model.ReservationCancelled && existing.Status != model.ReservationCancelled {
		t := s.now()
		res.CancelledAt = &t
	}
	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Cancel forces the reservation into CANCELLED and stamps the
// cancellation time, even when it is already cancelled (the stamp is
// overwritten).  A ReservationCancelled notification carries the
// reason.
func (s *ReservationService) Cancel(ctx context.Context, id uint64, reason string) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	res.Status = model.ReservationCancelled
	t := s.now()
	res.CancelledAt = &t
	if err := s.reservations.Save(ctx, res); err != nil {
		return err
	}
	publish(ctx, s.events, event.ReservationCancelled{
		ReservationID: id,
		Reason:        reason,
		OccurredAt:    s.now(),
	})
	return nil
}

// Delete removes a reservation.  A reservation that was never
// cancelled gets a ReservationCancelled notification with reason
// "Deletion" before the record disappears.
func (s *ReservationService) Delete(ctx context.Context, id uint64) error {
	exists, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if res.Status != model.ReservationCancelled {
		publish(ctx, s.events, event.ReservationCancelled{
			ReservationID: id,
			Reason:        "Deletion",
			OccurredAt:    s.now(),
		})
	}
	return s.reservations.DeleteByID(ctx, id)
}

// CheckAvailability reports whether the room is free over
// [checkIn, checkOut).  Unlike Create it tolerates checkIn equal to
// checkOut and only rejects checkIn after checkOut; the asymmetry is
// historical and kept on purpose.
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	if checkIn.After(checkOut) {
		return false, ErrInvalidRange
	}
	conflicts, err := s.reservations.FindConflicting(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Get returns the reservation with the given id or ErrNotFound.
func (s *ReservationService) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	return res, nil
}

// ListAll returns every reservation.
func (s *ReservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// ListByStatus returns reservations in the given lifecycle state.
func (s *ReservationService) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	return s.reservations.ListByStatus(ctx, status)
}

// ListByRoom returns the reservations attached to a room.
func (s *ReservationService) ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return s.reservations.ListByRoom(ctx, roomID)
}

// ListByGuest returns the reservations made by a guest.
func (s *ReservationService) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return s.reservations.ListByGuest(ctx, guestID)
}

// ListConflicting exposes the raw conflict query for a room and range.
func (s *ReservationService) ListConflicting(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	return s.reservations.FindConflicting(ctx, roomID, start, end)
}
