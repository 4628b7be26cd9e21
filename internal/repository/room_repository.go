package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  It implements the
// booking.RoomStore port: GetByID reports absence as (nil, nil)
// instead of an error, leaving the not-found decision to the service
// layer.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, code, type, base_price, capacity, description, available, created_at, updated_at`

// scanRoom reads one rooms row from a row scanner.
func scanRoom(scan func(dest ...any) error) (*model.Room, error) {
	var r model.Room
	var desc sql.NullString
	var createdAt, updatedAt string
	if err := scan(&r.ID, &r.Code, &r.Type, &r.BasePrice, &r.Capacity, &desc, &r.Available, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		r.Description = &d
	}
	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID returns the room with the given id, or (nil, nil) when it
// does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	room, err := scanRoom(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Save inserts the room when its ID is zero, populating the generated
// id, and updates the existing row otherwise.  Timestamps are written
// by the repository so both drivers behave identically.
func (r *RoomRepo) Save(ctx context.Context, room *model.Room) error {
	room.UpdatedAt = nowUTC()
	var desc sql.NullString
	if room.Description != nil {
		desc = sql.NullString{String: *room.Description, Valid: true}
	}
	if room.ID == 0 {
		if room.CreatedAt.IsZero() {
			room.CreatedAt = nowUTC()
		}
		const q = `INSERT INTO rooms (code, type, base_price, capacity, description, available, created_at, updated_at)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		result, err := r.db.ExecContext(ctx, q,
			room.Code, room.Type, room.BasePrice, room.Capacity, desc, room.Available,
			fmtTime(room.CreatedAt), fmtTime(room.UpdatedAt))
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		room.ID = uint64(id)
		return nil
	}
	const q = `UPDATE rooms SET code = ?, type = ?, base_price = ?, capacity = ?, description = ?, available = ?, updated_at = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		room.Code, room.Type, room.BasePrice, room.Capacity, desc, room.Available,
		fmtTime(room.UpdatedAt), room.ID)
	return err
}

// DeleteByID removes the room row.  Deleting an absent id is a no-op.
func (r *RoomRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM rooms WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// listRooms runs a rooms query and scans every row.
func (r *RoomRepo) listRooms(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, rows.Err()
}

// ListAll returns every room ordered by id.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	return r.listRooms(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
}

// ListByAvailability returns rooms filtered on the available flag.
func (r *RoomRepo) ListByAvailability(ctx context.Context, available bool) ([]model.Room, error) {
	return r.listRooms(ctx, `SELECT `+roomColumns+` FROM rooms WHERE available = ? ORDER BY id`, available)
}

// ListByType returns rooms whose type matches exactly.
func (r *RoomRepo) ListByType(ctx context.Context, roomType string) ([]model.Room, error) {
	return r.listRooms(ctx, `SELECT `+roomColumns+` FROM rooms WHERE type = ? ORDER BY id`, roomType)
}
