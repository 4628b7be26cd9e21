package model

import "time"

// Room represents a bookable hotel room.  Rooms carry a base nightly
// price that the pricing engine multiplies by the coefficient of the
// season covering each night of a stay.  This struct corresponds to a
// row in the `rooms` table.
//
// Fields:
//  ID          - primary key identifier.
//  Code        - unique room code (e.g. "101", "SUITE-3").
//  Type        - room type tag (e.g. "SIMPLE", "DOUBLE", "SUITE").
//  BasePrice   - base price per night before seasonal adjustment.
//  Capacity    - maximum number of guests.
//  Description - optional free-text description of the room.
//  Available   - manual out-of-service switch; an unavailable room can
//                never be booked regardless of date conflicts.
//  CreatedAt   - creation timestamp.
//  UpdatedAt   - timestamp of last update.
type Room struct {
	ID          uint64    // rooms.id
	Code        string    // rooms.code
	Type        string    // rooms.type
	BasePrice   float64   // rooms.base_price
	Capacity    uint32    // rooms.capacity
	Description *string   // rooms.description (nullable)
	Available   bool      // rooms.available
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
