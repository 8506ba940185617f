package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTTL = time.Hour

	// Reports are bucketed per minute: the same location reported for
	// the same shipment within one bucket counts as a duplicate.
	pingBucket = 60
)

// PingDedup suppresses repeated identical location reports, backed by
// Redis. Key format: ping:<tracking_id>:<location>:<minute_bucket>
type PingDedup struct {
	client *redis.Client
}

// NewPingDedup creates a PingDedup wrapping the given Redis client.
func NewPingDedup(client *redis.Client) *PingDedup {
	return &PingDedup{client: client}
}

// IsDuplicate reports whether this location was already reported for
// the shipment within the current bucket.
func (d *PingDedup) IsDuplicate(ctx context.Context, trackingID, locationName string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(trackingID, locationName, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("ping dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this report has been applied (expires after pingTTL).
func (d *PingDedup) Mark(ctx context.Context, trackingID, locationName string, ts time.Time) error {
	return d.client.Set(ctx, d.key(trackingID, locationName, ts), "1", pingTTL).Err()
}

func (d *PingDedup) key(trackingID, locationName string, ts time.Time) string {
	return fmt.Sprintf("ping:%s:%s:%d", trackingID, locationName, ts.Unix()/pingBucket)
}
