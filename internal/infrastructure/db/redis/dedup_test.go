package redis

import (
	"testing"
	"time"
)

func TestPingDedupKeyBuckets(t *testing.T) {
	d := &PingDedup{}
	base := time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC)

	same := d.key("CT-9F3A61B2", "Suez", base)
	within := d.key("CT-9F3A61B2", "Suez", base.Add(30*time.Second))
	nextBucket := d.key("CT-9F3A61B2", "Suez", base.Add(2*time.Minute))
	otherPlace := d.key("CT-9F3A61B2", "Gibraltar", base)
	otherShipment := d.key("CT-00000001", "Suez", base)

	if same != within {
		t.Errorf("reports within one bucket must collide: %q vs %q", same, within)
	}
	if same == nextBucket {
		t.Errorf("reports in different buckets must not collide: %q", same)
	}
	if same == otherPlace || same == otherShipment {
		t.Error("keys must be scoped per shipment and location")
	}
}
