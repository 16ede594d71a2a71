package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names for recorded game events
const (
	possessionStream = "quicktrack.possessions"
	scoreStream      = "quicktrack.scores"
)

// RedisPublisher publishes recorded game events to Redis streams so
// downstream consumers (film review tooling, exports) can tail the game
// as it is tracked
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishPossession publishes a recorded possession to the stream
func (rp *RedisPublisher) PublishPossession(ctx context.Context, event interface{}) error {
	return rp.publish(ctx, possessionStream, event)
}

// PublishScoreUpdate publishes a running-score change to the stream
func (rp *RedisPublisher) PublishScoreUpdate(ctx context.Context, event interface{}) error {
	return rp.publish(ctx, scoreStream, event)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
