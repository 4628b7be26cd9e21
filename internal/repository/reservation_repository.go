package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and the
// conflict query guarding new bookings.  It implements the
// booking.ReservationStore port.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, room_id, guest_id, check_in, check_out, status, created_at, cancelled_at`

func scanReservation(scan func(dest ...any) error) (*model.Reservation, error) {
	var res model.Reservation
	var status string
	var checkIn, checkOut, createdAt string
	var cancelledAt sql.NullString
	if err := scan(&res.ID, &res.RoomID, &res.GuestID, &checkIn, &checkOut, &status, &createdAt, &cancelledAt); err != nil {
		return nil, err
	}
	res.Status = model.ReservationStatus(status)
	var err error
	if res.CheckIn, err = parseDate(checkIn); err != nil {
		return nil, err
	}
	if res.CheckOut, err = parseDate(checkOut); err != nil {
		return nil, err
	}
	if res.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t, err := parseTime(cancelledAt.String)
		if err != nil {
			return nil, err
		}
		res.CancelledAt = &t
	}
	return &res, nil
}

// GetByID returns the reservation with the given id, or (nil, nil)
// when it does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	res, err := scanReservation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Save inserts the reservation when its ID is zero and updates it
// otherwise.
func (r *ReservationRepo) Save(ctx context.Context, res *model.Reservation) error {
	var cancelledAt sql.NullString
	if res.CancelledAt != nil {
		cancelledAt = sql.NullString{String: fmtTime(*res.CancelledAt), Valid: true}
	}
	if res.ID == 0 {
		if res.CreatedAt.IsZero() {
			res.CreatedAt = nowUTC()
		}
		const q = `INSERT INTO reservations (room_id, guest_id, check_in, check_out, status, created_at, cancelled_at)
		           VALUES (?, ?, ?, ?, ?, ?, ?)`
		result, err := r.db.ExecContext(ctx, q,
			res.RoomID, res.GuestID, fmtDate(res.CheckIn), fmtDate(res.CheckOut),
			string(res.Status), fmtTime(res.CreatedAt), cancelledAt)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		res.ID = uint64(id)
		return nil
	}
	const q = `UPDATE reservations SET room_id = ?, guest_id = ?, check_in = ?, check_out = ?, status = ?, cancelled_at = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		res.RoomID, res.GuestID, fmtDate(res.CheckIn), fmtDate(res.CheckOut),
		string(res.Status), cancelledAt, res.ID)
	return err
}

// DeleteByID removes the reservation row.
func (r *ReservationRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ExistsByID reports whether a reservation row exists under the id.
func (r *ReservationRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT COUNT(1) FROM reservations WHERE id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// ListAll returns every reservation ordered by creation time, newest
// first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC, id DESC`)
}

// ListByStatus returns reservations in the given lifecycle state.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE status = ? ORDER BY created_at DESC, id DESC`, string(status))
}

// ListByRoom returns the reservations attached to a room.
func (r *ReservationRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE room_id = ? ORDER BY check_in, id`, roomID)
}

// ListByGuest returns the reservations made by a guest.
func (r *ReservationRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE guest_id = ? ORDER BY check_in, id`, guestID)
}

// FindConflicting returns every reservation for the room whose
// half-open stay range overlaps [start, end).  Status is deliberately
// not filtered: cancelled rows block too, matching the historical
// conflict query.
func (r *ReservationRepo) FindConflicting(ctx context.Context, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE room_id = ? AND check_in < ? AND check_out > ?
	           ORDER BY check_in, id`
	return r.list(ctx, q, roomID, fmtDate(end), fmtDate(start))
}
