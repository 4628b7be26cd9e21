package booking

import (
	"context"
	"log"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/event"
)

// publish delivers an event to the sink and swallows any failure.
// Notification delivery must never block or fail the primary
// operation, so errors are logged and dropped here.
func publish(ctx context.Context, p event.Publisher, ev event.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Printf("events: publish %s failed: %v", ev.Kind(), err)
	}
}
