package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// SeasonRepo provides CRUD operations for seasons and the by-date
// lookup used by the pricing engine.  It implements the
// booking.SeasonStore port.
type SeasonRepo struct {
	db *sql.DB
}

// NewSeasonRepo returns a new SeasonRepo bound to the given database.
func NewSeasonRepo(db *sql.DB) *SeasonRepo { return &SeasonRepo{db: db} }

const seasonColumns = `id, name, start_date, end_date, coefficient`

func scanSeason(scan func(dest ...any) error) (*model.Season, error) {
	var s model.Season
	var start, end string
	if err := scan(&s.ID, &s.Name, &start, &end, &s.Coefficient); err != nil {
		return nil, err
	}
	var err error
	if s.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if s.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID returns the season with the given id, or (nil, nil) when it
// does not exist.
func (r *SeasonRepo) GetByID(ctx context.Context, id uint64) (*model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	s, err := scanSeason(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save inserts the season when its ID is zero and updates it
// otherwise.
func (r *SeasonRepo) Save(ctx context.Context, s *model.Season) error {
	if s.ID == 0 {
		const q = `INSERT INTO seasons (name, start_date, end_date, coefficient) VALUES (?, ?, ?, ?)`
		result, err := r.db.ExecContext(ctx, q, s.Name, fmtDate(s.StartDate), fmtDate(s.EndDate), s.Coefficient)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	}
	const q = `UPDATE seasons SET name = ?, start_date = ?, end_date = ?, coefficient = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, s.Name, fmtDate(s.StartDate), fmtDate(s.EndDate), s.Coefficient, s.ID)
	return err
}

// DeleteByID removes the season row.
func (r *SeasonRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM seasons WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ListAll returns every season ordered by start date.
func (r *SeasonRepo) ListAll(ctx context.Context) ([]model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Season, 0)
	for rows.Next() {
		s, err := scanSeason(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// FindCovering returns the season whose inclusive [start_date,
// end_date] range contains the given date, or (nil, nil) when the
// date is out of season.  Overlapping seasons are resolved
// deterministically: the lowest id wins.
func (r *SeasonRepo) FindCovering(ctx context.Context, date time.Time) (*model.Season, error) {
	const q = `SELECT ` + seasonColumns + ` FROM seasons
	           WHERE ? BETWEEN start_date AND end_date
	           ORDER BY id ASC LIMIT 1`
	row := r.db.QueryRowContext(ctx, q, fmtDate(date))
	s, err := scanSeason(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
