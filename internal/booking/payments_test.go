package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

type paymentFixture struct {
	svc          *PaymentService
	reservations *fakeReservationStore
	payments     *fakePaymentStore
	pub          *capturePublisher
	clock        time.Time
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		reservations: newFakeReservationStore(),
		payments:     newFakePaymentStore(),
		pub:          &capturePublisher{},
		clock:        time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewPaymentService(f.payments, f.reservations, f.pub)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *paymentFixture) addReservation(t *testing.T, status model.ReservationStatus) uint64 {
	t.Helper()
	res := &model.Reservation{
		RoomID:   1,
		GuestID:  7,
		CheckIn:  date(2025, time.July, 1),
		CheckOut: date(2025, time.July, 4),
		Status:   status,
	}
	if err := f.reservations.Save(context.Background(), res); err != nil {
		t.Fatal(err)
	}
	return res.ID
}

func (f *paymentFixture) addPayment(t *testing.T, resID uint64) *model.Payment {
	t.Helper()
	p, err := f.svc.Create(context.Background(), &model.Payment{
		ReservationID: resID,
		Amount:        300.00,
		Method:        "CARD",
	})
	if err != nil {
		t.Fatalf("Create payment: %v", err)
	}
	return p
}

func statusPtr(s model.PaymentStatus) *model.PaymentStatus { return &s }

func TestPaymentCreate(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationPending)

	p := f.addPayment(t, resID)
	if p.Status != model.PaymentPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.PaidAt.IsZero() {
		t.Error("PaidAt not defaulted")
	}
	if got := f.pub.kinds(); len(got) != 1 || got[0] != "payment.created" {
		t.Errorf("published events = %v, want [payment.created]", got)
	}

	// Empty method falls back to the default tag.
	p2, err := f.svc.Create(context.Background(), &model.Payment{ReservationID: resID, Amount: 50})
	if err != nil {
		t.Fatal(err)
	}
	if p2.Method != DefaultPaymentMethod {
		t.Errorf("method = %q, want %q", p2.Method, DefaultPaymentMethod)
	}

	_, err = f.svc.Create(context.Background(), &model.Payment{ReservationID: 99, Amount: 50})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown reservation: err = %v, want ErrNotFound", err)
	}
}

func TestPaymentConfirm_ConfirmsPendingReservation(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationPending)
	p := f.addPayment(t, resID)

	got, err := f.svc.Update(context.Background(), p.ID, PaymentUpdate{Status: statusPtr(model.PaymentConfirmed)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != model.PaymentConfirmed {
		t.Errorf("payment status = %s, want CONFIRMED", got.Status)
	}

	res, err := f.reservations.GetByID(context.Background(), resID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != model.ReservationConfirmed {
		t.Errorf("reservation status = %s, want CONFIRMED", res.Status)
	}

	kinds := f.pub.kinds()
	if kinds[len(kinds)-1] != "payment.status_changed" {
		t.Errorf("last event = %s, want payment.status_changed", kinds[len(kinds)-1])
	}
}

func TestPaymentConfirm_LeavesNonPendingReservationAlone(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationCompleted)
	p := f.addPayment(t, resID)

	if _, err := f.svc.Update(context.Background(), p.ID, PaymentUpdate{Status: statusPtr(model.PaymentConfirmed)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	res, _ := f.reservations.GetByID(context.Background(), resID)
	if res.Status != model.ReservationCompleted {
		t.Errorf("reservation status = %s, want COMPLETED untouched", res.Status)
	}
}

func TestPaymentCancelAndRefund_CancelReservation(t *testing.T) {
	for _, target := range []model.PaymentStatus{model.PaymentCancelled, model.PaymentRefunded} {
		t.Run(string(target), func(t *testing.T) {
			f := newPaymentFixture(t)
			resID := f.addReservation(t, model.ReservationConfirmed)
			p := f.addPayment(t, resID)

			if _, err := f.svc.Update(context.Background(), p.ID, PaymentUpdate{Status: statusPtr(target)}); err != nil {
				t.Fatalf("Update: %v", err)
			}
			res, _ := f.reservations.GetByID(context.Background(), resID)
			if res.Status != model.ReservationCancelled {
				t.Errorf("reservation status = %s, want CANCELLED", res.Status)
			}
			if res.CancelledAt == nil || !res.CancelledAt.Equal(f.clock) {
				t.Errorf("CancelledAt = %v, want clock time", res.CancelledAt)
			}
		})
	}
}

func TestPaymentCancel_AlreadyCancelledReservationUntouched(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationCancelled)
	p := f.addPayment(t, resID)

	if _, err := f.svc.Update(context.Background(), p.ID, PaymentUpdate{Status: statusPtr(model.PaymentCancelled)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	res, _ := f.reservations.GetByID(context.Background(), resID)
	if res.CancelledAt != nil {
		t.Errorf("CancelledAt = %v, want nil (no restamp)", res.CancelledAt)
	}
}

func TestPaymentUpdate_StatusMachine(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationPending)
	ctx := context.Background()

	p := f.addPayment(t, resID)
	if _, err := f.svc.Update(ctx, p.ID, PaymentUpdate{Status: statusPtr(model.PaymentCancelled)}); err != nil {
		t.Fatalf("PENDING -> CANCELLED: %v", err)
	}
	if _, err := f.svc.Update(ctx, p.ID, PaymentUpdate{Status: statusPtr(model.PaymentConfirmed)}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CANCELLED -> CONFIRMED: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.svc.Update(ctx, p.ID, PaymentUpdate{Status: statusPtr("BOGUS")}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unknown status: err = %v, want ErrInvalidTransition", err)
	}
}

func TestPaymentUpdate_PartialFieldsKeepExisting(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationPending)
	ctx := context.Background()

	p := f.addPayment(t, resID)
	newAmount := 150.0
	got, err := f.svc.Update(ctx, p.ID, PaymentUpdate{Amount: &newAmount})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Amount != 150.0 {
		t.Errorf("amount = %v, want 150.0", got.Amount)
	}
	if got.Method != "CARD" {
		t.Errorf("method = %q, want CARD preserved", got.Method)
	}
	if got.Status != model.PaymentPending {
		t.Errorf("status = %s, want PENDING preserved", got.Status)
	}

	// A same-status update is a no-op for events and side effects.
	before := len(f.pub.events)
	if _, err := f.svc.Update(ctx, p.ID, PaymentUpdate{Status: statusPtr(model.PaymentPending)}); err != nil {
		t.Fatal(err)
	}
	if len(f.pub.events) != before {
		t.Errorf("no event expected on unchanged status, got %v", f.pub.kinds()[before:])
	}
}

func TestPaymentDeleteAndGet(t *testing.T) {
	f := newPaymentFixture(t)
	resID := f.addReservation(t, model.ReservationPending)
	ctx := context.Background()

	p := f.addPayment(t, resID)
	if err := f.svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}
