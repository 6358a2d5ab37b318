package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

const (
	redisQueueKey   = "bazaar:queue:jobs"
	redisDelayedKey = "bazaar:queue:delayed"
)

// RedisDriver persists jobs in a Redis list so they survive restarts and
// can be shared across processes.
type RedisDriver struct {
	rdb *redis.Client
}

// NewRedisDriver wraps an already-connected Redis client. It also starts
// a goroutine that promotes due delayed jobs onto the main queue.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb}
	go d.promoteDelayed()
	return d
}

func (d *RedisDriver) Push(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.rdb.LPush(ctx, redisQueueKey, payload).Err()
}

// PushDelayed schedules a job to become available after delay, using a
// sorted set scored by the ready-at unix timestamp.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	score := float64(time.Now().Add(delay).Unix())
	return d.rdb.ZAdd(ctx, redisDelayedKey, redis.Z{Score: score, Member: payload}).Err()
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	// BRPOP with a timeout so worker loops can observe ctx cancellation.
	res, err := d.rdb.BRPop(ctx, 5*time.Second, redisQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// promoteDelayed moves due jobs from the delayed set to the main list
// once per second.
func (d *RedisDriver) promoteDelayed() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		now := strconv.FormatInt(time.Now().Unix(), 10)
		due, err := d.rdb.ZRangeByScore(ctx, redisDelayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: now,
		}).Result()
		if err != nil {
			cancel()
			continue
		}

		for _, member := range due {
			pipe := d.rdb.TxPipeline()
			pipe.ZRem(ctx, redisDelayedKey, member)
			pipe.LPush(ctx, redisQueueKey, member)
			if _, err := pipe.Exec(ctx); err != nil {
				logger.Warn("queue: promote delayed job", "error", err)
			}
		}
		cancel()
	}
}
