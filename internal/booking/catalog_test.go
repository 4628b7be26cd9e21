package booking

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRoomServiceCRUD(t *testing.T) {
	rooms := newFakeRoomStore()
	pub := &capturePublisher{}
	svc := NewRoomService(rooms, pub)
	ctx := context.Background()

	room, err := svc.Create(ctx, roomFixture(100.0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if room.ID == 0 {
		t.Error("expected an assigned id")
	}
	if got := pub.kinds(); len(got) != 1 || got[0] != "room.created" {
		t.Errorf("published events = %v, want [room.created]", got)
	}

	upd := roomFixture(120.0)
	upd.Code = "102"
	got, err := svc.Update(ctx, room.ID, upd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.BasePrice != 120.0 || got.Code != "102" {
		t.Errorf("update not applied: %+v", got)
	}

	if _, err := svc.Update(ctx, 99, roomFixture(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown: err = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(ctx, room.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, room.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, room.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestRoomServiceFilters(t *testing.T) {
	rooms := newFakeRoomStore()
	svc := NewRoomService(rooms, nil)
	ctx := context.Background()

	a := roomFixture(100.0)
	a.Type = "SIMPLE"
	b := roomFixture(200.0)
	b.Type = "SUITE"
	b.Available = false
	if _, err := svc.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	avail, err := svc.ListByAvailability(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(avail) != 1 || avail[0].Type != "SIMPLE" {
		t.Errorf("ListByAvailability(true) = %v", avail)
	}

	suites, err := svc.ListByType(ctx, "SUITE")
	if err != nil {
		t.Fatal(err)
	}
	if len(suites) != 1 || suites[0].Available {
		t.Errorf("ListByType(SUITE) = %v", suites)
	}
}

func TestSeasonServiceCRUD(t *testing.T) {
	seasons := newFakeSeasonStore()
	pub := &capturePublisher{}
	svc := NewSeasonService(seasons, pub)
	ctx := context.Background()

	season, err := svc.Create(ctx, seasonFixture("Haute saison", date(2025, time.July, 1), date(2025, time.August, 31), 1.5))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := pub.kinds(); len(got) != 1 || got[0] != "season.created" {
		t.Errorf("published events = %v, want [season.created]", got)
	}

	// end before start is rejected on create and update.
	if _, err := svc.Create(ctx, seasonFixture("Inversee", date(2025, time.July, 2), date(2025, time.July, 1), 1.0)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed create: err = %v, want ErrInvalidRange", err)
	}
	if _, err := svc.Update(ctx, season.ID, seasonFixture("Inversee", date(2025, time.July, 2), date(2025, time.July, 1), 1.0)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed update: err = %v, want ErrInvalidRange", err)
	}

	// A single-day season is fine: both bounds are inclusive.
	if _, err := svc.Create(ctx, seasonFixture("Jour ferie", date(2025, time.December, 25), date(2025, time.December, 25), 2.0)); err != nil {
		t.Errorf("single-day season: %v", err)
	}

	covering, err := svc.FindByDate(ctx, date(2025, time.July, 15))
	if err != nil {
		t.Fatal(err)
	}
	if covering == nil || covering.ID != season.ID {
		t.Errorf("FindByDate = %v, want season %d", covering, season.ID)
	}
	none, err := svc.FindByDate(ctx, date(2025, time.January, 15))
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Errorf("FindByDate off season = %v, want nil", none)
	}

	if err := svc.Delete(ctx, season.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, season.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}
