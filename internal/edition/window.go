package edition

import (
	"fmt"
	"time"
)

const (
	// deliveryTimeLayout is the printer's local delivery timestamp,
	// ISO-8601 with an explicit UTC offset: 2013-06-25T09:00:00+0100.
	deliveryTimeLayout = "2006-01-02T15:04:05-0700"

	// startDateLayout is the provider's naive event start timestamp,
	// read in the event's own timezone.
	startDateLayout = "2006-01-02 15:04:05"
)

// Window is the acceptance interval for "starts tomorrow", anchored at the
// next midnight in the delivery timezone's offset.
type Window struct {
	anchor time.Time
}

// NewWindow computes the window for a local delivery timestamp.
func NewWindow(localDeliveryTime string) (Window, error) {
	t, err := time.Parse(deliveryTimeLayout, localDeliveryTime)
	if err != nil {
		return Window{}, fmt.Errorf("parsing local_delivery_time %q: %v", localDeliveryTime, err)
	}

	tomorrow := t.Add(24 * time.Hour)
	anchor := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	return Window{anchor: anchor}, nil
}

// Anchor returns the window's start instant.
func (w Window) Anchor() time.Time {
	return w.anchor
}

// Contains reports whether an event starting at startDate in the named
// timezone falls inside the window. The event's own timezone applies, not
// the delivery timezone. The bound is one-sided: anything strictly before
// anchor+24h qualifies. The provider only returns forward-looking items,
// so no lower bound is checked.
func (w Window) Contains(startDate, timezone string) (bool, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return false, fmt.Errorf("loading timezone %q: %v", timezone, err)
	}

	start, err := time.ParseInLocation(startDateLayout, startDate, loc)
	if err != nil {
		return false, fmt.Errorf("parsing start date %q: %v", startDate, err)
	}

	return start.Sub(w.anchor) < 24*time.Hour, nil
}
