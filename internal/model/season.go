package model

import "time"

// Season is a named date range with a multiplicative price coefficient.
// Seasons apply globally by date and are independent of rooms.  Both
// bounds are inclusive: a season covers every date D with
// StartDate <= D <= EndDate.  Seasons are not required to be
// non-overlapping; when two seasons cover the same date the lookup is
// resolved deterministically by the store (lowest id wins).
//
// Fields:
//  ID          - primary key identifier.
//  Name        - display name (e.g. "Haute saison").
//  StartDate   - first covered date (inclusive).
//  EndDate     - last covered date (inclusive, >= StartDate).
//  Coefficient - price multiplier; <1 discount, >1 surcharge, 1 neutral.
type Season struct {
	ID          uint64    // seasons.id
	Name        string    // seasons.name
	StartDate   time.Time // seasons.start_date (date only)
	EndDate     time.Time // seasons.end_date (date only)
	Coefficient float64   // seasons.coefficient
}

// Covers reports whether the season's inclusive date range contains d.
// Only the calendar date of d is considered.
func (s *Season) Covers(d time.Time) bool {
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}
