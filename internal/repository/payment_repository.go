package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// PaymentRepo provides CRUD operations for payments.  It implements
// the booking.PaymentStore port.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, reservation_id, amount, method, status, paid_at`

func scanPayment(scan func(dest ...any) error) (*model.Payment, error) {
	var p model.Payment
	var status, paidAt string
	if err := scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &status, &paidAt); err != nil {
		return nil, err
	}
	p.Status = model.PaymentStatus(status)
	var err error
	if p.PaidAt, err = parseTime(paidAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns the payment with the given id, or (nil, nil) when
// it does not exist.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	p, err := scanPayment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save inserts the payment when its ID is zero and updates it
// otherwise.
func (r *PaymentRepo) Save(ctx context.Context, p *model.Payment) error {
	if p.ID == 0 {
		if p.PaidAt.IsZero() {
			p.PaidAt = nowUTC()
		}
		const q = `INSERT INTO payments (reservation_id, amount, method, status, paid_at) VALUES (?, ?, ?, ?, ?)`
		result, err := r.db.ExecContext(ctx, q,
			p.ReservationID, p.Amount, p.Method, string(p.Status), fmtTime(p.PaidAt))
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		p.ID = uint64(id)
		return nil
	}
	const q = `UPDATE payments SET reservation_id = ?, amount = ?, method = ?, status = ?, paid_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		p.ReservationID, p.Amount, p.Method, string(p.Status), fmtTime(p.PaidAt), p.ID)
	return err
}

// DeleteByID removes the payment row.
func (r *PaymentRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM payments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *PaymentRepo) list(ctx context.Context, q string, args ...any) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ListAll returns every payment ordered by id.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

// ListByReservation returns the payments attached to a reservation.
func (r *PaymentRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reservation_id = ? ORDER BY id`, reservationID)
}
