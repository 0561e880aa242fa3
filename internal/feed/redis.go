package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix namespaces pub/sub channels: <prefix><planID>.
const DefaultChannelPrefix = "mintabi:plans:"

// Redis is a Feed over Redis PUBLISH/SUBSCRIBE so several processes editing
// the same database see each other's writes.
type Redis struct {
	rdb    *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedis connects to url (redis://[:password@]host:port/db) and verifies
// the connection.
func NewRedis(ctx context.Context, url, prefix string, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisFromClient(rdb, prefix, logger), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *redis.Client, prefix string, logger *slog.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Redis{rdb: rdb, prefix: prefix, logger: logger}
}

// Channel returns the pub/sub channel name for planID.
func (r *Redis) Channel(planID string) string {
	return r.prefix + planID
}

func (r *Redis) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding plan event: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.Channel(ev.PlanID), payload).Err(); err != nil {
		return fmt.Errorf("publishing plan event: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, planID string) (<-chan Event, func(), error) {
	ps := r.rdb.Subscribe(ctx, r.Channel(planID))
	// Wait for the subscription confirmation so no publish after this
	// call returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", r.Channel(planID), err)
	}

	out := make(chan Event, 1)
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() { close(stop) })
	}

	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, err := decodeEvent(msg.Payload, planID)
				if err != nil {
					r.logger.Warn("dropping malformed plan event", "channel", msg.Channel, "error", err)
					continue
				}
				offer(out, ev)
			}
		}
	}()
	return out, cancel, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func decodeEvent(payload, planID string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, err
	}
	if ev.PlanID == "" {
		ev.PlanID = planID
	}
	if ev.PlanID != planID {
		return Event{}, fmt.Errorf("event for %q on channel of %q", ev.PlanID, planID)
	}
	return ev, nil
}
