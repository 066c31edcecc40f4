package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lyhu_portal/internal/events"
	"lyhu_portal/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptSession  = errors.New("corrupt session record")
)

type Client struct {
	rdb *redis.Client
}

// SessionData is the persisted "current user" record of one sign-in.
type SessionData struct {
	UserID    string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewClient wraps an existing connection.
func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func sessionKey(token string) string {
	return models.SlotSession + ":" + token
}

// Session management
func (c *Client) SetSession(ctx context.Context, token string, data *SessionData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionKey(token), jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, token string) (*SessionData, error) {
	val, err := c.rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}

// Order change relay

// EventRelay publishes local order events on Redis and feeds events from
// other instances into the local broker.
type EventRelay struct {
	client *Client
	origin string
	log    logrus.FieldLogger
}

func (c *Client) NewEventRelay(origin string, log logrus.FieldLogger) *EventRelay {
	return &EventRelay{client: c, origin: origin, log: log.WithField("channel", events.Channel)}
}

func (r *EventRelay) Publish(ctx context.Context, ev events.Event) {
	if ev.Origin == "" {
		ev.Origin = r.origin
	}
	if ev.Origin != r.origin {
		// relayed in from another instance
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		r.log.WithError(err).Error("Failed to marshal order event")
		return
	}
	if err := r.client.rdb.Publish(ctx, events.Channel, payload).Err(); err != nil {
		r.log.WithError(err).Warn("Failed to publish order event")
	}
}

// Forward delivers foreign events to local until ctx is done.
func (r *EventRelay) Forward(ctx context.Context, local events.Publisher) error {
	sub := r.client.rdb.Subscribe(ctx, events.Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.Channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev events.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.log.WithError(err).Warn("Dropped malformed order event")
				continue
			}
			if ev.Origin == r.origin {
				continue
			}
			local.Publish(ctx, ev)
		}
	}
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
