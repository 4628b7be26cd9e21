package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/booking"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/model"
)

// RoomHandler exposes the room catalog over HTTP.
type RoomHandler struct {
	Rooms *booking.RoomService
}

func NewRoomHandler(s *booking.RoomService) *RoomHandler { return &RoomHandler{Rooms: s} }

type roomReq struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	BasePrice   float64 `json:"basePrice"`
	Capacity    uint32  `json:"capacity"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type roomResp struct {
	ID          uint64    `json:"id"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	BasePrice   float64   `json:"basePrice"`
	Capacity    uint32    `json:"capacity"`
	Description *string   `json:"description"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r roomReq) toModel() *model.Room {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &model.Room{
		Code:        r.Code,
		Type:        r.Type,
		BasePrice:   r.BasePrice,
		Capacity:    r.Capacity,
		Description: r.Description,
		Available:   available,
	}
}

func toRoomResp(m *model.Room) roomResp {
	return roomResp{
		ID:          m.ID,
		Code:        m.Code,
		Type:        m.Type,
		BasePrice:   m.BasePrice,
		Capacity:    m.Capacity,
		Description: m.Description,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRoomResps(rooms []model.Room) []roomResp {
	out := make([]roomResp, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResp(&rooms[i]))
	}
	return out
}

// Create registers a new room in the catalog.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, err := h.Rooms.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// Update replaces the fields of an existing room.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, err := h.Rooms.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// Delete removes a room from the catalog.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns a single room by id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// List returns the room catalog.  Optional query parameters narrow
// the result: ?available=true|false and ?type=SUITE.
func (h *RoomHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if v := c.QueryParam("available"); v != "" {
		if v != "true" && v != "false" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "available must be true or false"})
		}
		rooms, err := h.Rooms.ListByAvailability(ctx, v == "true")
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toRoomResps(rooms))
	}
	if t := c.QueryParam("type"); t != "" {
		rooms, err := h.Rooms.ListByType(ctx, t)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toRoomResps(rooms))
	}
	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResps(rooms))
}
