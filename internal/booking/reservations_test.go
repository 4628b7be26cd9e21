package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

type reservationFixture struct {
	svc          *ReservationService
	rooms        *fakeRoomStore
	reservations *fakeReservationStore
	payments     *fakePaymentStore
	pub          *capturePublisher
	clock        time.Time
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	f := &reservationFixture{
		rooms:        newFakeRoomStore(),
		reservations: newFakeReservationStore(),
		payments:     newFakePaymentStore(),
		pub:          &capturePublisher{},
		clock:        time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewReservationService(f.reservations, f.rooms, f.payments, f.pub)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *reservationFixture) addRoom(t *testing.T, basePrice float64, available bool) uint64 {
	t.Helper()
	room := roomFixture(basePrice)
	room.Available = available
	if err := f.rooms.Save(context.Background(), room); err != nil {
		t.Fatal(err)
	}
	return room.ID
}

func (f *reservationFixture) book(t *testing.T, roomID uint64, in, out time.Time) *model.Reservation {
	t.Helper()
	res, err := f.svc.Create(context.Background(), &model.Reservation{
		RoomID:   roomID,
		GuestID:  7,
		CheckIn:  in,
		CheckOut: out,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return res
}

func TestReservationCreate(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()
	roomID := f.addRoom(t, 100.0, true)

	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 4))

	if res.ID == 0 {
		t.Error("expected an assigned id")
	}
	if res.Status != model.ReservationPending {
		t.Errorf("status = %s, want PENDING", res.Status)
	}
	if got := f.pub.kinds(); len(got) != 1 || got[0] != "reservation.created" {
		t.Errorf("published events = %v, want [reservation.created]", got)
	}

	// A pending payment is created alongside, priced flat at
	// basePrice x nights regardless of seasons.
	ps, err := f.payments.ListByReservation(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 {
		t.Fatalf("payments = %d, want 1", len(ps))
	}
	if ps[0].Amount != 300.00 {
		t.Errorf("payment amount = %v, want 300.00", ps[0].Amount)
	}
	if ps[0].Status != model.PaymentPending {
		t.Errorf("payment status = %s, want PENDING", ps[0].Status)
	}
	if ps[0].Method != DefaultPaymentMethod {
		t.Errorf("payment method = %q, want %q", ps[0].Method, DefaultPaymentMethod)
	}
}

func TestReservationCreate_InvalidRange(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)

	for _, tc := range []struct {
		name    string
		in, out time.Time
	}{
		{"equal dates", date(2025, time.July, 1), date(2025, time.July, 1)},
		{"reversed dates", date(2025, time.July, 4), date(2025, time.July, 1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), &model.Reservation{
				RoomID: roomID, GuestID: 7, CheckIn: tc.in, CheckOut: tc.out,
			}, "")
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestReservationCreate_RoomChecks(t *testing.T) {
	f := newReservationFixture(t)
	unavailable := f.addRoom(t, 100.0, false)

	_, err := f.svc.Create(context.Background(), &model.Reservation{
		RoomID: unavailable, GuestID: 7,
		CheckIn: date(2025, time.July, 1), CheckOut: date(2025, time.July, 2),
	}, "")
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("unavailable room: err = %v, want ErrRoomUnavailable", err)
	}

	_, err = f.svc.Create(context.Background(), &model.Reservation{
		RoomID: 99, GuestID: 7,
		CheckIn: date(2025, time.July, 1), CheckOut: date(2025, time.July, 2),
	}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown room: err = %v, want ErrNotFound", err)
	}
}

func TestReservationCreate_DoubleBooking(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 5))

	_, err := f.svc.Create(context.Background(), &model.Reservation{
		RoomID: roomID, GuestID: 8,
		CheckIn: date(2025, time.July, 3), CheckOut: date(2025, time.July, 7),
	}, "")
	if !errors.Is(err, ErrDoubleBooking) {
		t.Errorf("overlap: err = %v, want ErrDoubleBooking", err)
	}
}

func TestReservationCreate_TouchingRangesDoNotConflict(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 5))

	// Back to back stays share the turnover day.
	f.book(t, roomID, date(2025, time.July, 5), date(2025, time.July, 8))
	f.book(t, roomID, date(2025, time.June, 28), date(2025, time.July, 1))
}

func TestReservationCreate_CancelledReservationStillBlocks(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 5))

	if err := f.svc.Cancel(context.Background(), res.ID, "change of plans"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// The conflict query ignores status, so the cancelled stay keeps
	// blocking until the record is deleted.
	_, err := f.svc.Create(context.Background(), &model.Reservation{
		RoomID: roomID, GuestID: 8,
		CheckIn: date(2025, time.July, 2), CheckOut: date(2025, time.July, 4),
	}, "")
	if !errors.Is(err, ErrDoubleBooking) {
		t.Errorf("err = %v, want ErrDoubleBooking", err)
	}

	if err := f.svc.Delete(context.Background(), res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	f.book(t, roomID, date(2025, time.July, 2), date(2025, time.July, 4))
}

func TestReservationUpdate_StatusMachine(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	ctx := context.Background()

	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 4))

	upd := *res
	upd.Status = model.ReservationCompleted
	if _, err := f.svc.Update(ctx, res.ID, &upd); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PENDING -> COMPLETED: err = %v, want ErrInvalidTransition", err)
	}

	upd = *res
	upd.Status = model.ReservationConfirmed
	got, err := f.svc.Update(ctx, res.ID, &upd)
	if err != nil {
		t.Fatalf("PENDING -> CONFIRMED: %v", err)
	}
	if got.Status != model.ReservationConfirmed {
		t.Errorf("status = %s, want CONFIRMED", got.Status)
	}

	upd = *got
	upd.Status = model.ReservationCancelled
	got, err = f.svc.Update(ctx, res.ID, &upd)
	if err != nil {
		t.Fatalf("CONFIRMED -> CANCELLED: %v", err)
	}
	if got.CancelledAt == nil || !got.CancelledAt.Equal(f.clock) {
		t.Errorf("CancelledAt = %v, want clock time", got.CancelledAt)
	}

	upd = *got
	upd.Status = model.ReservationConfirmed
	if _, err := f.svc.Update(ctx, res.ID, &upd); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CANCELLED -> CONFIRMED: err = %v, want ErrInvalidTransition", err)
	}
}

func TestReservationUpdate_ConflictRecheckExcludesSelf(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	ctx := context.Background()

	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 4))

	// Shifting the same reservation by one day overlaps only itself.
	upd := *res
	upd.CheckIn = date(2025, time.July, 2)
	upd.CheckOut = date(2025, time.July, 5)
	if _, err := f.svc.Update(ctx, res.ID, &upd); err != nil {
		t.Fatalf("shift own dates: %v", err)
	}

	// Moving onto another reservation's dates fails.
	other := f.book(t, roomID, date(2025, time.July, 10), date(2025, time.July, 12))
	upd = *res
	upd.CheckIn = date(2025, time.July, 10)
	upd.CheckOut = date(2025, time.July, 12)
	if _, err := f.svc.Update(ctx, res.ID, &upd); !errors.Is(err, ErrDoubleBooking) {
		t.Errorf("move onto %d: err = %v, want ErrDoubleBooking", other.ID, err)
	}
}

func TestReservationCancel_IdempotentAndRestamps(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	ctx := context.Background()

	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 4))

	if err := f.svc.Cancel(ctx, res.ID, "first"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	first, err := f.svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}

	// A second cancel succeeds and overwrites the stamp.
	f.clock = f.clock.Add(time.Hour)
	if err := f.svc.Cancel(ctx, res.ID, "second"); err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	second, err := f.svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CancelledAt.After(*first.CancelledAt) {
		t.Errorf("stamp not overwritten: first=%v second=%v", first.CancelledAt, second.CancelledAt)
	}

	cancels := 0
	for _, k := range f.pub.kinds() {
		if k == "reservation.cancelled" {
			cancels++
		}
	}
	if cancels != 2 {
		t.Errorf("cancelled events = %d, want 2", cancels)
	}
}

func TestReservationDelete_EmitsCancellationUnlessAlreadyCancelled(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	ctx := context.Background()

	res := f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 4))
	if err := f.svc.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found := false
	for _, k := range f.pub.kinds() {
		if k == "reservation.cancelled" {
			found = true
		}
	}
	if !found {
		t.Error("deleting an active reservation should emit reservation.cancelled")
	}

	// Deleting an already cancelled reservation stays silent.
	res2 := f.book(t, roomID, date(2025, time.August, 1), date(2025, time.August, 3))
	if err := f.svc.Cancel(ctx, res2.ID, "done"); err != nil {
		t.Fatal(err)
	}
	before := len(f.pub.events)
	if err := f.svc.Delete(ctx, res2.ID); err != nil {
		t.Fatalf("Delete cancelled: %v", err)
	}
	if len(f.pub.events) != before {
		t.Errorf("no extra event expected, got %v", f.pub.kinds()[before:])
	}

	if err := f.svc.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newReservationFixture(t)
	roomID := f.addRoom(t, 100.0, true)
	ctx := context.Background()

	f.book(t, roomID, date(2025, time.July, 1), date(2025, time.July, 5))

	free, err := f.svc.CheckAvailability(ctx, roomID, date(2025, time.July, 3), date(2025, time.July, 6))
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Error("overlapping range reported as free")
	}

	free, err = f.svc.CheckAvailability(ctx, roomID, date(2025, time.July, 5), date(2025, time.July, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("touching range reported as busy")
	}

	// Equal dates are tolerated here, unlike Create.
	if _, err := f.svc.CheckAvailability(ctx, roomID, date(2025, time.July, 10), date(2025, time.July, 10)); err != nil {
		t.Errorf("equal dates: %v", err)
	}
	if _, err := f.svc.CheckAvailability(ctx, roomID, date(2025, time.July, 10), date(2025, time.July, 9)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed dates: err = %v, want ErrInvalidRange", err)
	}
}

func TestReservationListFilters(t *testing.T) {
	f := newReservationFixture(t)
	roomA := f.addRoom(t, 100.0, true)
	roomB := f.addRoom(t, 120.0, true)
	ctx := context.Background()

	r1 := f.book(t, roomA, date(2025, time.July, 1), date(2025, time.July, 3))
	f.book(t, roomB, date(2025, time.July, 1), date(2025, time.July, 3))

	if err := f.svc.Cancel(ctx, r1.ID, ""); err != nil {
		t.Fatal(err)
	}

	byStatus, err := f.svc.ListByStatus(ctx, model.ReservationCancelled)
	if err != nil {
		t.Fatal(err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != r1.ID {
		t.Errorf("ListByStatus(CANCELLED) = %v", byStatus)
	}

	byRoom, err := f.svc.ListByRoom(ctx, roomB)
	if err != nil {
		t.Fatal(err)
	}
	if len(byRoom) != 1 {
		t.Errorf("ListByRoom = %d entries, want 1", len(byRoom))
	}

	byGuest, err := f.svc.ListByGuest(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(byGuest) != 2 {
		t.Errorf("ListByGuest = %d entries, want 2", len(byGuest))
	}
}
