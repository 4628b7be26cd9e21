// Package booking implements the core of the engine: the room and
// season catalogs, the seasonal pricing engine and the reservation and
// payment lifecycles.  Persistence and event delivery are reached
// through the narrow ports defined in this file so that storage
// technology and transport can vary without touching the lifecycle
// logic.
package booking

import (
	"context"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// RoomStore is the persistence port for rooms.  GetByID returns
// (nil, nil) when no room with the given id exists; the services
// translate that absence into ErrNotFound where business logic
// requires the entity.  Save inserts when the room's ID is zero
// (assigning the generated id) and updates otherwise.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	Save(ctx context.Context, room *model.Room) error
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.Room, error)
	ListByAvailability(ctx context.Context, available bool) ([]model.Room, error)
	ListByType(ctx context.Context, roomType string) ([]model.Room, error)
}

// SeasonStore is the persistence port for seasons.  FindCovering
// returns the season whose inclusive [start, end] range contains the
// given date, or (nil, nil) when no season covers it.  When several
// seasons cover the date the store must pick deterministically: the
// season with the lowest id wins.
type SeasonStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Season, error)
	Save(ctx context.Context, season *model.Season) error
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.Season, error)
	FindCovering(ctx context.Context, date time.Time) (*model.Season, error)
}

// ReservationStore is the persistence port for reservations.
// FindConflicting returns every reservation for the room whose stay
// overlaps the half-open range [start, end), regardless of status:
// cancelled rows are intentionally not filtered out (see
// ReservationService for the consequences).
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	Save(ctx context.Context, res *model.Reservation) error
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error)
	ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	FindConflicting(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error)
}

// PaymentStore is the persistence port for payments.
type PaymentStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Payment, error)
	Save(ctx context.Context, p *model.Payment) error
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.Payment, error)
	ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error)
}
