package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestReceiptRepository_SaveAndGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewReceiptRepository(client)
	ctx := context.Background()

	t.Run("assigns id and round trips", func(t *testing.T) {
		transitAt := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
		receipt := &domain.CalculationReceipt{
			RequestID:   "req-1",
			NatalAt:     time.Date(1990, 5, 17, 14, 30, 0, 0, time.UTC),
			TransitAt:   transitAt,
			HouseSystem: domain.HouseSystemWholeSign,
			EntityCount: 18,
			AspectCount: 7,
		}

		require.NoError(t, repo.Save(ctx, receipt))
		assert.NotEmpty(t, receipt.ID)
		assert.False(t, receipt.CreatedAt.IsZero())
		assert.True(t, mr.Exists("astro:calc:"+receipt.ID))
		assert.Equal(t, receiptTTL, mr.TTL("astro:calc:"+receipt.ID))

		got, err := repo.Get(ctx, receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, receipt.ID, got.ID)
		assert.Equal(t, "req-1", got.RequestID)
		assert.True(t, transitAt.Equal(got.TransitAt))
		assert.Equal(t, 18, got.EntityCount)
		assert.Equal(t, 7, got.AspectCount)
	})

	t.Run("missing receipt", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
	})

	t.Run("expires", func(t *testing.T) {
		receipt := &domain.CalculationReceipt{ID: "short"}
		require.NoError(t, repo.Save(ctx, receipt))
		mr.FastForward(receiptTTL + time.Second)

		_, err := repo.Get(ctx, "short")
		assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
	})

	t.Run("stores no positions or aspects", func(t *testing.T) {
		receipt := &domain.CalculationReceipt{ID: "shape", AspectCount: 3}
		require.NoError(t, repo.Save(ctx, receipt))

		raw, err := mr.Get("astro:calc:shape")
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &fields))
		assert.NotContains(t, fields, "aspects")
		assert.NotContains(t, fields, "bodies")
	})
}

func TestDigestPublisher_Publish(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, DigestChannel("p-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewDigestPublisher(client)
	n, err := pub.Publish(ctx, "p-1", map[string]string{"profile_id": "p-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "astro:digest:p-1", msg.Channel)
	assert.JSONEq(t, `{"profile_id":"p-1"}`, msg.Payload)
}

func TestDigestPublisher_Subscribe(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	pub := NewDigestPublisher(client)
	msgs, err := pub.Subscribe(ctx, "p-9")
	require.NoError(t, err)

	n, err := pub.Publish(context.Background(), "p-9", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	select {
	case payload := <-msgs:
		assert.JSONEq(t, `{"n":1}`, payload)
	case <-time.After(2 * time.Second):
		t.Fatal("digest not relayed")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-msgs
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}
