package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	rateKeyFmt      = "rate:%d:%d:%s"
	dashboardKey    = "dashboard:today"
	rateTTL         = 10 * time.Minute
	dashboardTTL    = 30 * time.Second
	rateScanPattern = "rate:*"
)

// Cache wraps the optional Redis client. A nil *Cache or a Cache whose
// connection failed degrades every helper to a no-op.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. An unreachable server is not fatal; callers get a
// disabled cache instead.
func New(host, port, password string) *Cache {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Redis] Connection failed, caching disabled: %v", err)
		client.Close()
		return &Cache{}
	}

	log.Printf("[Redis] Connected to %s:%s", host, port)
	return &Cache{client: client}
}

func (c *Cache) enabled() bool { return c != nil && c.client != nil }

// GetRate returns a cached rate lookup, if any.
func (c *Cache) GetRate(ctx context.Context, flowerTypeID, timeSlotID int, date time.Time) (decimal.Decimal, decimal.Decimal, bool) {
	if !c.enabled() {
		return decimal.Zero, decimal.Zero, false
	}
	key := fmt.Sprintf(rateKeyFmt, flowerTypeID, timeSlotID, date.Format("2006-01-02"))
	vals, err := c.client.HGetAll(ctx, key).Result()
	if err != nil || len(vals) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	rate, err1 := decimal.NewFromString(vals["rate"])
	commission, err2 := decimal.NewFromString(vals["commission"])
	if err1 != nil || err2 != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return rate, commission, true
}

// SetRate stores a resolved rate for a short TTL.
func (c *Cache) SetRate(ctx context.Context, flowerTypeID, timeSlotID int, date time.Time, rate, commission decimal.Decimal) {
	if !c.enabled() {
		return
	}
	key := fmt.Sprintf(rateKeyFmt, flowerTypeID, timeSlotID, date.Format("2006-01-02"))
	c.client.HSet(ctx, key, "rate", rate.String(), "commission", commission.String())
	c.client.Expire(ctx, key, rateTTL)
}

// InvalidateRates drops all cached rate lookups after a rate mutation.
func (c *Cache) InvalidateRates(ctx context.Context) {
	if !c.enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, rateScanPattern, 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[Redis] Rate invalidation scan failed: %v", err)
	}
}

// GetDashboard returns the cached dashboard snapshot JSON.
func (c *Cache) GetDashboard(ctx context.Context) (string, bool) {
	if !c.enabled() {
		return "", false
	}
	val, err := c.client.Get(ctx, dashboardKey).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetDashboard stores the dashboard snapshot JSON.
func (c *Cache) SetDashboard(ctx context.Context, payload string) {
	if !c.enabled() {
		return
	}
	c.client.Set(ctx, dashboardKey, payload, dashboardTTL)
}

// Close releases the underlying connection, if any.
func (c *Cache) Close() {
	if c.enabled() {
		c.client.Close()
	}
}
