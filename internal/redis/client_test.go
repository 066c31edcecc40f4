package redis

import (
	"context"
	"testing"
	"time"

	"lyhu_portal/internal/events"
	"lyhu_portal/internal/logger"
	"lyhu_portal/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	data := &SessionData{UserID: "3", Email: "ctv@lyhu.vn", Name: "CTV LYHU", Role: models.RoleCTV}
	require.NoError(t, client.SetSession(ctx, "tok", data, time.Hour))

	assert.True(t, mr.Exists("lyhu_current_user:tok"))

	got, err := client.GetSession(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "3", got.UserID)
	assert.Equal(t, models.RoleCTV, got.Role)

	require.NoError(t, client.DeleteSession(ctx, "tok"))
	_, err = client.GetSession(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	require.NoError(t, client.SetSession(ctx, "tok", &SessionData{UserID: "1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := client.GetSession(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSession_CorruptRecord(t *testing.T) {
	client, mr := newTestClient(t)
	require.NoError(t, mr.Set("lyhu_current_user:tok", "{oops"))

	_, err := client.GetSession(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrCorruptSession)
}

func TestEventRelay_ForwardsForeignEventsOnly(t *testing.T) {
	client, mr := newTestClient(t)
	log := logger.Discard()

	local := client.NewEventRelay("instance-a", log)
	remote := client.NewEventRelay("instance-b", log)

	broker := events.NewBroker(4)
	received, cancel := broker.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	done := make(chan error, 1)
	go func() { done <- local.Forward(ctx, broker) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(events.Channel)[events.Channel] == 1
	}, time.Second, 10*time.Millisecond)

	local.Publish(ctx, events.Event{Type: events.OrderCreated, OrderID: "ORD-2025-001"})
	remote.Publish(ctx, events.Event{Type: events.OrderStatusChanged, OrderID: "ORD-2025-002"})

	select {
	case ev := <-received:
		assert.Equal(t, events.OrderStatusChanged, ev.Type)
		assert.Equal(t, "instance-b", ev.Origin)
	case <-time.After(time.Second):
		t.Fatal("relayed event not delivered")
	}

	stop()
	assert.NoError(t, <-done)
	assert.Len(t, received, 0)
}
