package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listKey      = "pokedex:journal"
	eventChannel = "pokedex:journal:events"
)

// RedisJournal keeps events in a capped Redis list and publishes each one on a Pub/Sub channel.
type RedisJournal struct {
	rdb    *redis.Client
	limit  int
	logger *slog.Logger
}

var _ Journal = (*RedisJournal)(nil)

// NewRedisJournal connects to redisURL (redis://host:port/db) and checks the connection.
func NewRedisJournal(ctx context.Context, redisURL string, limit int, logger *slog.Logger) (*RedisJournal, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	j := &RedisJournal{rdb: redis.NewClient(opt), limit: limit, logger: logger}
	if err := j.Ping(ctx); err != nil {
		_ = j.rdb.Close()
		return nil, err
	}
	logger.Info("Connected to Redis for journal", "addr", opt.Addr, "limit", limit)
	return j, nil
}

func (j *RedisJournal) Ping(ctx context.Context) error {
	if err := j.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// DialRedisJournal retries NewRedisJournal until Redis answers, for use during startup.
func DialRedisJournal(ctx context.Context, redisURL string, limit int, logger *slog.Logger, attempts int, delay time.Duration) (*RedisJournal, error) {
	if _, err := redis.ParseURL(redisURL); err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	for i := 0; i < attempts; i++ {
		j, err := NewRedisJournal(ctx, redisURL, limit, logger)
		if err == nil {
			return j, nil
		}
		logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("redis did not become available after %d attempts", attempts)
}

func (j *RedisJournal) Close() error {
	if err := j.rdb.Close(); err != nil {
		j.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// Record appends e, trims the list to the configured limit and publishes e.
func (j *RedisJournal) Record(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = j.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, listKey, data)
		pipe.LTrim(ctx, listKey, int64(-j.limit), -1)
		pipe.Publish(ctx, eventChannel, data)
		return nil
	})
	if err != nil {
		j.logger.Error("Failed to record event", "type", e.Type, "error", err)
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Recent returns the last limit events, oldest first.
func (j *RedisJournal) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > j.limit {
		limit = j.limit
	}
	raw, err := j.rdb.LRange(ctx, listKey, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		var e Event
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			j.logger.Warn("Skipping unreadable journal entry", "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Subscribe listens on the event channel. The subscription is confirmed before it returns.
func (j *RedisJournal) Subscribe(ctx context.Context) (<-chan Event, error) {
	pubsub := j.rdb.Subscribe(ctx, eventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to journal: %w", err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer func() {
			if err := pubsub.Close(); err != nil {
				j.logger.Error("Failed to close pubsub", "error", err)
			}
		}()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					j.logger.Error("Failed to unmarshal event", "error", err, "payload", msg.Payload)
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
