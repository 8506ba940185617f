package service

import (
	"fmt"

	"github.com/google/uuid"
)

// TrackingIDGenerator produces external tracking codes. It is injected
// into the shipment service so tests can supply deterministic codes;
// true uniqueness is enforced by the persistence layer's unique index,
// with the service retrying generation on collision.
type TrackingIDGenerator interface {
	Generate() string
}

const trackingPrefix = "CT"

type uuidTrackingID struct{}

// NewTrackingIDGenerator returns the default generator. Codes look like
// CT-9F3A61B2: a short, human-readable handle rather than a full UUID.
func NewTrackingIDGenerator() TrackingIDGenerator {
	return uuidTrackingID{}
}

func (uuidTrackingID) Generate() string {
	id := uuid.New()
	return fmt.Sprintf("%s-%08X", trackingPrefix, id[:4])
}
