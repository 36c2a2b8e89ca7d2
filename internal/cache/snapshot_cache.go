package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tourdesk/backend/internal/billing"
)

const snapshotKeyFmt = "billing:snapshot:%s"

// SnapshotCache keeps the last successfully computed snapshot of each charge
// record so a failed store read can still show the last-known state. A nil
// client turns every call into a no-op.
type SnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: client, ttl: ttl}
}

func snapshotKey(chargeID string) string {
	return fmt.Sprintf(snapshotKeyFmt, chargeID)
}

// Put stores a freshly computed snapshot.
func (c *SnapshotCache) Put(ctx context.Context, snap billing.Snapshot) error {
	if c == nil || c.redis == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, snapshotKey(snap.ChargeID), data, c.ttl).Err()
}

// LastKnown returns the cached snapshot, marked stale. ok is false when
// nothing is cached.
func (c *SnapshotCache) LastKnown(ctx context.Context, chargeID string) (billing.Snapshot, bool) {
	if c == nil || c.redis == nil {
		return billing.Snapshot{}, false
	}
	data, err := c.redis.Get(ctx, snapshotKey(chargeID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Failed to read snapshot for %s: %v", chargeID, err)
		}
		return billing.Snapshot{}, false
	}

	var snap billing.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("[CACHE] Corrupt snapshot for %s: %v", chargeID, err)
		return billing.Snapshot{}, false
	}
	snap.Stale = true
	return snap, true
}

// Invalidate drops the snapshot of a charge record.
func (c *SnapshotCache) Invalidate(ctx context.Context, chargeID string) error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, snapshotKey(chargeID)).Err()
}
