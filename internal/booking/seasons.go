package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// SeasonService manages the season catalog: named date ranges carrying
// the price coefficients the pricing engine applies per night.
type SeasonService struct {
	seasons SeasonStore
	events  event.Publisher
	now     func() time.Time
}

// NewSeasonService constructs a SeasonService.  events may be nil.
func NewSeasonService(seasons SeasonStore, events event.Publisher) *SeasonService {
	return &SeasonService{seasons: seasons, events: events, now: func() time.Time { return time.Now().UTC() }}
}

// Create persists a new season and emits a SeasonCreated notification.
// The bounds are inclusive and must satisfy start <= end.
func (s *SeasonService) Create(ctx context.Context, season *model.Season) (*model.Season, error) {
	if season.EndDate.Before(season.StartDate) {
		return nil, ErrInvalidRange
	}
	season.ID = 0
	if err := s.seasons.Save(ctx, season); err != nil {
		return nil, err
	}
	publish(ctx, s.events, event.SeasonCreated{
		SeasonID:    season.ID,
		Name:        season.Name,
		StartDate:   season.StartDate.Format(dateLayout),
		EndDate:     season.EndDate.Format(dateLayout),
		Coefficient: season.Coefficient,
		OccurredAt:  s.now(),
	})
	return season, nil
}

// Update replaces an existing season's fields.  It fails with
// ErrNotFound when the id is unknown.
func (s *SeasonService) Update(ctx context.Context, id uint64, season *model.Season) (*model.Season, error) {
	existing, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("season %d: %w", id, ErrNotFound)
	}
	if season.EndDate.Before(season.StartDate) {
		return nil, ErrInvalidRange
	}
	season.ID = id
	if err := s.seasons.Save(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// Delete removes a season.  It fails with ErrNotFound when the id is
// unknown.
func (s *SeasonService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("season %d: %w", id, ErrNotFound)
	}
	return s.seasons.DeleteByID(ctx, id)
}

// Get returns the season with the given id or ErrNotFound.
func (s *SeasonService) Get(ctx context.Context, id uint64) (*model.Season, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, fmt.Errorf("season %d: %w", id, ErrNotFound)
	}
	return season, nil
}

// ListAll returns every season in the catalog.
func (s *SeasonService) ListAll(ctx context.Context) ([]model.Season, error) {
	return s.seasons.ListAll(ctx)
}

// FindByDate returns the season covering the given date, or nil when
// the date is out of season.  Overlapping seasons resolve to the one
// with the lowest id.
func (s *SeasonService) FindByDate(ctx context.Context, date time.Time) (*model.Season, error) {
	return s.seasons.FindCovering(ctx, date)
}
