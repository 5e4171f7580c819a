package slots

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func newCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

var (
	monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	key    = Key{ProviderID: "provider-1", StartDate: monday, EndDate: monday, Duration: 30, Interval: 15}
	cached = []domain.AvailableTimeSlot{
		{Date: "2025-10-13", StartTime: "09:00", EndTime: "09:30", Duration: 30, IsAvailable: true, ProviderID: "provider-1"},
		{Date: "2025-10-13", StartTime: "09:15", EndTime: "09:45", Duration: 30, IsAvailable: false, ProviderID: "provider-1"},
	}
)

func TestDataKey(t *testing.T) {
	assert.Equal(t, "slots:provider-1:v0:2025-10-13:30:15", dataKey(key, 0))

	ranged := key
	ranged.EndDate = monday.AddDate(0, 0, 2)
	assert.Equal(t, "slots:provider-1:v3:2025-10-13_2025-10-15:30:15", dataKey(ranged, 3))
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	miss, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, miss.Found)
	assert.Zero(t, miss.Version)

	require.NoError(t, c.Set(ctx, key, miss.Version, cached))

	hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit.Found)
	assert.Equal(t, cached, hit.Slots)

	assert.Equal(t, 5*time.Minute, mr.TTL("slots:provider-1:v0:2025-10-13:30:15"))
}

func TestRedisCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, key, 0, []domain.AvailableTimeSlot{}))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Empty(t, got.Slots)
}

func TestRedisCache_InvalidateProvider(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	other := key
	other.ProviderID = "provider-2"

	require.NoError(t, c.Set(ctx, key, 0, cached))
	require.NoError(t, c.Set(ctx, other, 0, cached))

	require.NoError(t, c.InvalidateProvider(ctx, "provider-1"))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, int64(1), got.Version)

	got, err = c.Get(ctx, other)
	require.NoError(t, err)
	assert.True(t, got.Found)

	// После инвалидации кэш снова наполняется под новой версией
	require.NoError(t, c.Set(ctx, key, 1, cached[:1]))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Len(t, got.Slots, 1)
}

func TestRedisCache_StaleWriteAfterInvalidate(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	// Читатель промахнулся и считает слоты, в это время создаётся запись
	miss, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, miss.Found)

	require.NoError(t, c.InvalidateProvider(ctx, "provider-1"))

	stale := []domain.AvailableTimeSlot{
		{Date: "2025-10-13", StartTime: "10:00", EndTime: "10:30", Duration: 30, IsAvailable: true, ProviderID: "provider-1"},
	}
	require.NoError(t, c.Set(ctx, key, miss.Version, stale))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Nil(t, got.Slots)
}

func TestRedisCache_Errors(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("slots:provider-1:v0:2025-10-13:30:15", "{not json"))
	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrDecode)

	mr.Close()
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheRead)
	assert.ErrorIs(t, c.InvalidateProvider(ctx, "provider-1"), ErrCacheWrite)
}

func TestNoop(t *testing.T) {
	var c Noop
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, key, 0, cached))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.NoError(t, c.InvalidateProvider(ctx, "provider-1"))
}
