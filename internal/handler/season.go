package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// SeasonHandler exposes the season catalog over HTTP.
type SeasonHandler struct {
	Seasons *booking.SeasonService
}

func NewSeasonHandler(s *booking.SeasonService) *SeasonHandler { return &SeasonHandler{Seasons: s} }

type seasonReq struct {
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Coefficient float64 `json:"coefficient"`
}

type seasonResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Coefficient float64 `json:"coefficient"`
}

func toSeasonResp(s *model.Season) seasonResp {
	return seasonResp{
		ID:          s.ID,
		Name:        s.Name,
		StartDate:   s.StartDate.Format(dateLayout),
		EndDate:     s.EndDate.Format(dateLayout),
		Coefficient: s.Coefficient,
	}
}

func (r seasonReq) toModel() (*model.Season, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	return &model.Season{
		Name:        r.Name,
		StartDate:   start,
		EndDate:     end,
		Coefficient: r.Coefficient,
	}, nil
}

// Create registers a new season.
func (h *SeasonHandler) Create(c echo.Context) error {
	var req seasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	season, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	season, err = h.Seasons.Create(c.Request().Context(), season)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toSeasonResp(season))
}

// Update replaces an existing season's fields.
func (h *SeasonHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req seasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	season, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	season, err = h.Seasons.Update(c.Request().Context(), id, season)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSeasonResp(season))
}

// Delete removes a season.
func (h *SeasonHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Seasons.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns a single season by id.
func (h *SeasonHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	season, err := h.Seasons.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSeasonResp(season))
}

// List returns every season.  With ?date=YYYY-MM-DD it instead returns
// the season covering that date, or 404 when the date is out of season.
func (h *SeasonHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if d := c.QueryParam("date"); d != "" {
		date, err := parseDate(d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		season, err := h.Seasons.FindByDate(ctx, date)
		if err != nil {
			return respondError(c, err)
		}
		if season == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no season covers " + d})
		}
		return c.JSON(http.StatusOK, toSeasonResp(season))
	}
	seasons, err := h.Seasons.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]seasonResp, 0, len(seasons))
	for i := range seasons {
		out = append(out, toSeasonResp(&seasons[i]))
	}
	return c.JSON(http.StatusOK, out)
}
