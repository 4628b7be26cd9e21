package model

import "time"

// PaymentStatus enumerates the states of the payment lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Valid reports whether s is one of the defined payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentConfirmed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s
// to next.  Allowed moves: PENDING -> CONFIRMED and
// PENDING|CONFIRMED -> CANCELLED|REFUNDED.  Re-activation of a
// cancelled or refunded payment is not supported.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case PaymentPending:
		return next == PaymentConfirmed || next == PaymentCancelled || next == PaymentRefunded
	case PaymentConfirmed:
		return next == PaymentCancelled || next == PaymentRefunded
	case PaymentCancelled, PaymentRefunded:
		return false
	}
	return false
}

// Payment records money owed or received for a reservation.  A
// reservation normally has a single payment but the model allows
// several to accommodate retries and corrections.
//
// Fields:
//  ID            - primary key identifier.
//  ReservationID - reservation being paid for.
//  Amount        - non-negative amount due.
//  Method        - free-text method tag ("CARD", "CASH", ...);
//                  defaults to "NON_DEFINI" when not supplied.
//  Status        - state of the payment lifecycle.
//  PaidAt        - payment timestamp.
type Payment struct {
	ID            uint64        // payments.id
	ReservationID uint64        // payments.reservation_id
	Amount        float64       // payments.amount
	Method        string        // payments.method
	Status        PaymentStatus // payments.status
	PaidAt        time.Time     // payments.paid_at
}
