package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// RoomService manages the room catalog.  Beyond existence checks it
// performs no validation on price or capacity; those are expected to
// be non-negative but the catalog does not enforce it.
type RoomService struct {
	rooms  RoomStore
	events event.Publisher
	now    func() time.Time
}

// NewRoomService constructs a RoomService.  events may be nil, in
// which case no notifications are emitted.
func NewRoomService(rooms RoomStore, events event.Publisher) *RoomService {
	return &RoomService{rooms: rooms, events: events, now: func() time.Time { return time.Now().UTC() }}
}

// Create persists a new room and emits a RoomCreated notification.
func (s *RoomService) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	room.ID = 0
	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	publish(ctx, s.events, event.RoomCreated{
		RoomID:     room.ID,
		Code:       room.Code,
		Type:       room.Type,
		BasePrice:  room.BasePrice,
		OccurredAt: s.now(),
	})
	return room, nil
}

// Update replaces the fields of an existing room.  It fails with
// ErrNotFound when no room exists under the given id.
func (s *RoomService) Update(ctx context.Context, id uint64, room *model.Room) (*model.Room, error) {
	existing, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	room.ID = id
	room.CreatedAt = existing.CreatedAt
	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room.  Referencing reservations are not checked;
// callers are responsible for not deleting rooms that still have
// reservations attached.
func (s *RoomService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return s.rooms.DeleteByID(ctx, id)
}

// Get returns the room with the given id or ErrNotFound.
func (s *RoomService) Get(ctx context.Context, id uint64) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return room, nil
}

// ListAll returns every room in the catalog.
func (s *RoomService) ListAll(ctx context.Context) ([]model.Room, error) {
	return s.rooms.ListAll(ctx)
}

// ListByAvailability returns rooms filtered by their out-of-service flag.
func (s *RoomService) ListByAvailability(ctx context.Context, available bool) ([]model.Room, error) {
	return s.rooms.ListByAvailability(ctx, available)
}

// ListByType returns rooms whose type tag matches exactly.
func (s *RoomService) ListByType(ctx context.Context, roomType string) ([]model.Room, error) {
	return s.rooms.ListByType(ctx, roomType)
}
