package domain

import "time"

// LegDuration is the flat per-leg travel estimate. The estimator is
// deliberately naive: every leg costs the same regardless of distance.
const LegDuration = 48 * time.Hour

// EstimateETA derives the estimated arrival instant from the reconciled
// route, the current position, and the status. It is pure: the reference
// time is injected, never read from the system clock.
//
// Delivered shipments have no ETA. A route shorter than two points
// cannot be estimated, so the previously stored value is returned
// unchanged rather than regressed to nil. A current location that is
// absent or not on the route counts as the full journey remaining.
func EstimateETA(route []Location, current *Location, status Status, prior *time.Time, now time.Time) *time.Time {
	if status == StatusDelivered {
		return nil
	}
	if len(route) < 2 {
		return prior
	}

	remaining := len(route) - 1
	if current != nil {
		for i, wp := range route {
			if wp.Name == current.Name {
				remaining = len(route) - 1 - i
				break
			}
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	if remaining == 0 {
		// Route data says the shipment has arrived, even if the
		// status has not been flipped to delivered yet.
		return &now
	}

	eta := now.Add(time.Duration(remaining) * LegDuration)
	return &eta
}
