package database

import "database/sql"

// schema holds the table definitions applied to the embedded SQLite
// database.  MySQL deployments run the equivalent migrations
// externally.  Dates and timestamps are stored as formatted text,
// written and parsed by the repository layer, so rows are readable
// with either driver.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(64) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'USER',
		created_at VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code VARCHAR(32) NOT NULL UNIQUE,
		type VARCHAR(32) NOT NULL,
		base_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		capacity INTEGER NOT NULL DEFAULT 1,
		description TEXT,
		available BOOLEAN NOT NULL DEFAULT 1,
		created_at VARCHAR(19) NOT NULL,
		updated_at VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seasons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(64) NOT NULL,
		start_date VARCHAR(10) NOT NULL,
		end_date VARCHAR(10) NOT NULL,
		coefficient DOUBLE PRECISION NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id INTEGER NOT NULL REFERENCES rooms(id),
		guest_id INTEGER NOT NULL REFERENCES users(id),
		check_in VARCHAR(10) NOT NULL,
		check_out VARCHAR(10) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
		created_at VARCHAR(19) NOT NULL,
		cancelled_at VARCHAR(19)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_room_dates ON reservations (room_id, check_in, check_out)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reservation_id INTEGER NOT NULL REFERENCES reservations(id),
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		method VARCHAR(32) NOT NULL DEFAULT 'NON_DEFINI',
		status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
		paid_at VARCHAR(19) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_reservation ON payments (reservation_id)`,
}

// applySchema creates the tables when they do not exist yet.
func applySchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
