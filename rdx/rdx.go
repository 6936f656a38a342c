// Package rdx wraps the redis client used for booth-stat caching and change
// event publishing. The cache is an optimization: every method is nil-safe and
// every failure is logged and swallowed so the API keeps serving without redis.
package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"expofloor/models"

	"github.com/redis/go-redis/v9"
)

const statsTTL = 60 * time.Second

type Cache struct {
	Conn *redis.Client
}

func New(addr string) *Cache {
	return &Cache{Conn: redis.NewClient(&redis.Options{Addr: addr})}
}

func statsKey(planID string) string {
	return "floorplan:stats:" + planID
}

// GetStats returns cached booth stats for a plan, if present.
func (c *Cache) GetStats(ctx context.Context, planID string) (models.BoothStats, bool) {
	var stats models.BoothStats
	if c == nil || c.Conn == nil {
		return stats, false
	}

	raw, err := c.Conn.Get(ctx, statsKey(planID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("rdx: stats get failed for %s: %v", planID, err)
		}
		return stats, false
	}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("rdx: stats decode failed for %s: %v", planID, err)
		return stats, false
	}
	return stats, true
}

func (c *Cache) SetStats(ctx context.Context, planID string, stats models.BoothStats) {
	if c == nil || c.Conn == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.Conn.Set(ctx, statsKey(planID), data, statsTTL).Err(); err != nil {
		log.Printf("rdx: stats set failed for %s: %v", planID, err)
	}
}

// InvalidatePlan drops cached data after any mutation of the plan.
func (c *Cache) InvalidatePlan(ctx context.Context, planID string) {
	if c == nil || c.Conn == nil {
		return
	}
	if err := c.Conn.Del(ctx, statsKey(planID)).Err(); err != nil {
		log.Printf("rdx: invalidate failed for %s: %v", planID, err)
	}
}

func (c *Cache) Publish(ctx context.Context, channel string, payload []byte) error {
	if c == nil || c.Conn == nil {
		return nil
	}
	return c.Conn.Publish(ctx, channel, payload).Err()
}
