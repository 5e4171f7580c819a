package slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "slots:"

// Key параметры, от которых зависит результат генерации
type Key struct {
	ProviderID string
	StartDate  time.Time
	EndDate    time.Time
	Duration   int
	Interval   int
}

func (k Key) dates() string {
	start := k.StartDate.Format(domain.DateFormat)
	end := k.EndDate.Format(domain.DateFormat)
	if start == end {
		return start
	}
	return start + "_" + end
}

// Lookup результат чтения из кэша.
// Version - версия мастера на момент чтения, под ней же нужно записывать сгенерированные слоты.
type Lookup struct {
	Slots   []domain.AvailableTimeSlot
	Found   bool
	Version int64
}

// RedisCache кэш сгенерированных слотов.
// Ключ содержит версию мастера: InvalidateProvider увеличивает версию,
// и старые ключи перестают читаться без сканирования, а затем истекают по TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает кэш слотов поверх Redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func versionKey(providerID string) string {
	return keyPrefix + providerID + ":version"
}

func dataKey(k Key, version int64) string {
	return fmt.Sprintf("%s%s:v%d:%s:%d:%d", keyPrefix, k.ProviderID, version, k.dates(), k.Duration, k.Interval)
}

func (c *RedisCache) version(ctx context.Context, providerID string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(providerID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// Get возвращает слоты из кэша; Found == false, если ключа нет
func (c *RedisCache) Get(ctx context.Context, key Key) (Lookup, error) {
	version, err := c.version(ctx, key.ProviderID)
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: Get - version: %v", ErrCacheRead, err)
	}

	raw, err := c.client.Get(ctx, dataKey(key, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Version: version}, nil
	}
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: Get: %v", ErrCacheRead, err)
	}

	var result []domain.AvailableTimeSlot
	if err := json.Unmarshal(raw, &result); err != nil {
		return Lookup{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return Lookup{Slots: result, Found: true, Version: version}, nil
}

// Set сохраняет слоты под версией, прочитанной в Get.
// Если мастер успел смениться, запись уходит в мертвый ключ и никогда не читается.
func (c *RedisCache) Set(ctx context.Context, key Key, version int64, slots []domain.AvailableTimeSlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, dataKey(key, version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheWrite, err)
	}

	return nil
}

// InvalidateProvider делает недоступными все закэшированные слоты мастера
func (c *RedisCache) InvalidateProvider(ctx context.Context, providerID string) error {
	if err := c.client.Incr(ctx, versionKey(providerID)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateProvider: %v", ErrCacheWrite, err)
	}
	return nil
}

// Noop кэш, который ничего не хранит (Redis выключен в конфиге)
type Noop struct{}

func (Noop) Get(context.Context, Key) (Lookup, error) { return Lookup{}, nil }

func (Noop) Set(context.Context, Key, int64, []domain.AvailableTimeSlot) error { return nil }

func (Noop) InvalidateProvider(context.Context, string) error { return nil }
