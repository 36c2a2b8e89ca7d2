package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/billing"
)

func sampleSnapshot() billing.Snapshot {
	return billing.Snapshot{
		ChargeID: "charge-1",
		Breakdown: billing.Breakdown{
			ChargeID:     "charge-1",
			TotalOwed:    decimal.RequireFromString("1200"),
			TotalPaid:    decimal.RequireFromString("1000"),
			TotalPending: decimal.RequireFromString("200"),
		},
		Status:     billing.StatusResult{Status: billing.StatusPartial, CanTravel: true},
		ComputedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotCache_Put(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewSnapshotCache(client, time.Hour)
	snap := sampleSnapshot()

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	mock.ExpectSet("billing:snapshot:charge-1", data, time.Hour).SetVal("OK")

	assert.NoError(t, c.Put(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotCache_LastKnown(t *testing.T) {
	ctx := context.Background()

	t.Run("cached snapshot comes back stale", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := NewSnapshotCache(client, time.Hour)

		data, err := json.Marshal(sampleSnapshot())
		require.NoError(t, err)
		mock.ExpectGet("billing:snapshot:charge-1").SetVal(string(data))

		snap, ok := c.LastKnown(ctx, "charge-1")
		require.True(t, ok)
		assert.True(t, snap.Stale)
		assert.Equal(t, billing.StatusPartial, snap.Status.Status)
		assert.True(t, snap.Breakdown.TotalPending.Equal(decimal.RequireFromString("200")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing cached", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := NewSnapshotCache(client, time.Hour)
		mock.ExpectGet("billing:snapshot:charge-2").RedisNil()

		_, ok := c.LastKnown(ctx, "charge-2")
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := NewSnapshotCache(client, time.Hour)
		mock.ExpectGet("billing:snapshot:charge-3").SetErr(errors.New("connection refused"))

		_, ok := c.LastKnown(ctx, "charge-3")
		assert.False(t, ok)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		c := NewSnapshotCache(client, time.Hour)
		mock.ExpectGet("billing:snapshot:charge-4").SetVal("{not json")

		_, ok := c.LastKnown(ctx, "charge-4")
		assert.False(t, ok)
	})
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewSnapshotCache(client, time.Hour)
	mock.ExpectDel("billing:snapshot:charge-1").SetVal(1)

	assert.NoError(t, c.Invalidate(context.Background(), "charge-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotCache_WithoutRedis(t *testing.T) {
	c := NewSnapshotCache(nil, time.Hour)
	ctx := context.Background()

	assert.NoError(t, c.Put(ctx, sampleSnapshot()))
	assert.NoError(t, c.Invalidate(ctx, "charge-1"))
	_, ok := c.LastKnown(ctx, "charge-1")
	assert.False(t, ok)
}
