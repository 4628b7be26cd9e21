package booking

import (
	"context"
	"sort"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// In-memory store fakes shared by the service tests.  They mirror the
// SQL repositories' contract: GetByID returns (nil, nil) on absence
// and Save assigns ids on insert.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func roomFixture(basePrice float64) *model.Room {
	return &model.Room{
		Code:      "101",
		Type:      "DOUBLE",
		BasePrice: basePrice,
		Capacity:  2,
		Available: true,
	}
}

func seasonFixture(name string, start, end time.Time, coeff float64) *model.Season {
	return &model.Season{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Coefficient: coeff,
	}
}

type fakeRoomStore struct {
	nextID uint64
	rooms  map[uint64]model.Room
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[uint64]model.Room)}
}

func (s *fakeRoomStore) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeRoomStore) Save(_ context.Context, room *model.Room) error {
	if room.ID == 0 {
		s.nextID++
		room.ID = s.nextID
	} else if room.ID > s.nextID {
		s.nextID = room.ID
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *fakeRoomStore) DeleteByID(_ context.Context, id uint64) error {
	delete(s.rooms, id)
	return nil
}

func (s *fakeRoomStore) ListAll(_ context.Context) ([]model.Room, error) {
	out := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeRoomStore) ListByAvailability(ctx context.Context, available bool) ([]model.Room, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.Available == available {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRoomStore) ListByType(ctx context.Context, roomType string) ([]model.Room, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.Type == roomType {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSeasonStore struct {
	nextID  uint64
	seasons map[uint64]model.Season
}

func newFakeSeasonStore() *fakeSeasonStore {
	return &fakeSeasonStore{seasons: make(map[uint64]model.Season)}
}

func (s *fakeSeasonStore) GetByID(_ context.Context, id uint64) (*model.Season, error) {
	se, ok := s.seasons[id]
	if !ok {
		return nil, nil
	}
	return &se, nil
}

func (s *fakeSeasonStore) Save(_ context.Context, season *model.Season) error {
	if season.ID == 0 {
		s.nextID++
		season.ID = s.nextID
	} else if season.ID > s.nextID {
		s.nextID = season.ID
	}
	s.seasons[season.ID] = *season
	return nil
}

func (s *fakeSeasonStore) DeleteByID(_ context.Context, id uint64) error {
	delete(s.seasons, id)
	return nil
}

func (s *fakeSeasonStore) ListAll(_ context.Context) ([]model.Season, error) {
	out := make([]model.Season, 0, len(s.seasons))
	for _, se := range s.seasons {
		out = append(out, se)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindCovering resolves overlaps by lowest id, like the SQL query's
// ORDER BY id ASC LIMIT 1.
func (s *fakeSeasonStore) FindCovering(ctx context.Context, d time.Time) (*model.Season, error) {
	all, _ := s.ListAll(ctx)
	for i := range all {
		if all[i].Covers(d) {
			return &all[i], nil
		}
	}
	return nil, nil
}

type fakeReservationStore struct {
	nextID       uint64
	reservations map[uint64]model.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: make(map[uint64]model.Reservation)}
}

func (s *fakeReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeReservationStore) Save(_ context.Context, res *model.Reservation) error {
	if res.ID == 0 {
		s.nextID++
		res.ID = s.nextID
	} else if res.ID > s.nextID {
		s.nextID = res.ID
	}
	s.reservations[res.ID] = *res
	return nil
}

func (s *fakeReservationStore) DeleteByID(_ context.Context, id uint64) error {
	delete(s.reservations, id)
	return nil
}

func (s *fakeReservationStore) ListAll(_ context.Context) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeReservationStore) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.GuestID == guestID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) ExistsByID(_ context.Context, id uint64) (bool, error) {
	_, ok := s.reservations[id]
	return ok, nil
}

// FindConflicting is status-blind on purpose, matching the SQL query.
func (s *fakeReservationStore) FindConflicting(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, r := range all {
		if r.RoomID == roomID && r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePaymentStore struct {
	nextID   uint64
	payments map[uint64]model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[uint64]model.Payment)}
}

func (s *fakePaymentStore) GetByID(_ context.Context, id uint64) (*model.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *fakePaymentStore) Save(_ context.Context, p *model.Payment) error {
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *fakePaymentStore) DeleteByID(_ context.Context, id uint64) error {
	delete(s.payments, id)
	return nil
}

func (s *fakePaymentStore) ListAll(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakePaymentStore) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	all, _ := s.ListAll(ctx)
	out := all[:0:0]
	for _, p := range all {
		if p.ReservationID == reservationID {
			out = append(out, p)
		}
	}
	return out, nil
}

// capturePublisher records every published event for assertions.
type capturePublisher struct {
	events []event.Event
}

func (c *capturePublisher) Publish(_ context.Context, ev event.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *capturePublisher) kinds() []string {
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Kind())
	}
	return out
}
