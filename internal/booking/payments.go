package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// PaymentUpdate carries the fields of an update request.  Nil fields
// fall back to the payment's existing values.
type PaymentUpdate struct {
	Amount *float64
	Method *string
	Status *model.PaymentStatus
	PaidAt *time.Time
}

// PaymentService drives the payment lifecycle and keeps the linked
// reservation's status in sync: a confirmed payment confirms a pending
// reservation, a cancelled or refunded payment cancels a
// not-yet-cancelled reservation.  The synchronization is one-way;
// reservation changes never cascade back into payment state.
type PaymentService struct {
	payments     PaymentStore
	reservations ReservationStore
	events       event.Publisher
	now          func() time.Time
}

// NewPaymentService constructs a PaymentService.  events may be nil.
func NewPaymentService(payments PaymentStore, reservations ReservationStore, events event.Publisher) *PaymentService {
	return &PaymentService{
		payments:     payments,
		reservations: reservations,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new payment for an existing reservation.  The
// status defaults to PENDING and the timestamp to now.  A
// PaymentCreated notification is emitted on success.
func (s *PaymentService) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	res, err := s.reservations.GetByID(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("reservation %d: %w", p.ReservationID, ErrNotFound)
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	if !p.Status.Valid() {
		return nil, ErrInvalidTransition
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = s.now()
	}
	if p.Method == "" {
		p.Method = DefaultPaymentMethod
	}
	p.ID = 0
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.events, event.PaymentCreated{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        string(p.Status),
		OccurredAt:    s.now(),
	})
	return p, nil
}

// Update applies upd to an existing payment.  When the status changes
// it must follow the lifecycle; the change is announced with a
// PaymentStatusChanged notification and then synchronized onto the
// linked reservation.
func (s *PaymentService) Update(ctx context.Context, id uint64, upd PaymentUpdate) (*model.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	oldStatus := p.Status

	if upd.Amount != nil {
		p.Amount = *upd.Amount
	}
	if upd.Method != nil {
		p.Method = *upd.Method
	}
	if upd.PaidAt != nil {
		p.PaidAt = *upd.PaidAt
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, ErrInvalidTransition
		}
		if !oldStatus.CanTransitionTo(*upd.Status) {
			return nil, fmt.Errorf("payment %d: %s -> %s: %w", id, oldStatus, *upd.Status, ErrInvalidTransition)
		}
		p.Status = *upd.Status
	}

	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	if p.Status != oldStatus {
		publish(ctx, s.events, event.PaymentStatusChanged{
			PaymentID:  p.ID,
			OldStatus:  string(oldStatus),
			NewStatus:  string(p.Status),
			OccurredAt: s.now(),
		})
		switch p.Status {
		case model.PaymentConfirmed:
			if err := s.confirmReservation(ctx, p.ReservationID); err != nil {
				return nil, err
			}
		case model.PaymentCancelled, model.PaymentRefunded:
			if err := s.cancelReservation(ctx, p.ReservationID); err != nil {
				return nil, err
			}
		case model.PaymentPending:
			// no reservation side effect
		}
	}
	return p, nil
}

// confirmReservation advances a PENDING reservation to CONFIRMED when
// its payment is confirmed.  Reservations in any other state are left
// untouched.
func (s *PaymentService) confirmReservation(ctx context.Context, reservationID uint64) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil || res.Status != model.ReservationPending {
		return nil
	}
	res.Status = model.ReservationConfirmed
	return s.reservations.Save(ctx, res)
}

// cancelReservation cancels a not-yet-cancelled reservation when its
// payment is cancelled or refunded, stamping the cancellation time.
func (s *PaymentService) cancelReservation(ctx context.Context, reservationID uint64) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil || res.Status == model.ReservationCancelled {
		return nil
	}
	res.Status = model.ReservationCancelled
	t := s.now()
	res.CancelledAt = &t
	return s.reservations.Save(ctx, res)
}

// Delete removes a payment.  It fails with ErrNotFound when the id is
// unknown.
func (s *PaymentService) Delete(ctx context.Context, id uint64) error {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return s.payments.DeleteByID(ctx, id)
}

// Get returns the payment with the given id or ErrNotFound.
func (s *PaymentService) Get(ctx context.Context, id uint64) (*model.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListAll returns every payment.
func (s *PaymentService) ListAll(ctx context.Context) ([]model.Payment, error) {
	return s.payments.ListAll(ctx)
}

// ListByReservation returns the payments attached to a reservation.
func (s *PaymentService) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	return s.payments.ListByReservation(ctx, reservationID)
}
