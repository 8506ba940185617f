package domain

// ReconcileRoute merges origin, destination, and candidate intermediate
// waypoints into the canonical ordered route: origin first, destination
// last, intermediates kept in input order, and no two entries sharing a
// name (first occurrence wins). It is pure and deterministic, so it is
// re-run on every mutating save without drift.
//
// Either anchor may be nil; with both absent the result is empty. A
// result shorter than two points is valid and means the shipment is
// unrouteable — ETA estimation treats it as "unknown".
func ReconcileRoute(origin, destination *Location, intermediates []Location) []Location {
	route := make([]Location, 0, len(intermediates)+2)

	if origin != nil && origin.Name != "" {
		route = append(route, *origin)
	}

	for _, wp := range intermediates {
		// Unnamed waypoints cannot participate in name-keyed
		// deduplication and are dropped.
		if wp.Name == "" {
			continue
		}
		if origin != nil && wp.Name == origin.Name {
			continue
		}
		if destination != nil && wp.Name == destination.Name {
			continue
		}
		route = append(route, wp)
	}

	if destination != nil && destination.Name != "" {
		if n := len(route); n == 0 || route[n-1].Name != destination.Name {
			route = append(route, *destination)
		}
	}

	return dedupeByName(route)
}

// dedupeByName drops any later entry whose name duplicates an earlier
// one, preserving order.
func dedupeByName(route []Location) []Location {
	seen := make(map[string]struct{}, len(route))
	out := make([]Location, 0, len(route))
	for _, wp := range route {
		if _, ok := seen[wp.Name]; ok {
			continue
		}
		seen[wp.Name] = struct{}{}
		out = append(out, wp)
	}
	return out
}
