package domain

// NextStatus derives the status that results from a location report,
// evaluated against the destination name. deliveredNow is true exactly
// when this report completes the shipment, in which case the caller
// must stamp the delivery date and clear the ETA.
//
// Rules, in order: delivered shipments reject any further report;
// reaching the destination delivers; a pending shipment starts
// transit; delayed and cancelled are sticky manual overrides that an
// ordinary ping does not clear; anything else stays in transit.
func NextStatus(current Status, destinationName, reportedName string) (next Status, deliveredNow bool, err error) {
	if current == StatusDelivered {
		return current, false, ErrShipmentDelivered
	}
	if reportedName != "" && reportedName == destinationName {
		return StatusDelivered, true, nil
	}
	switch current {
	case StatusDelayed, StatusCancelled:
		return current, false, nil
	default:
		return StatusInTransit, false, nil
	}
}
