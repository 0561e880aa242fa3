package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHub_DeliversOnlyToPlanSubscribers(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	kyoto, cancelKyoto, err := hub.Subscribe(ctx, "kyoto")
	require.NoError(t, err)
	defer cancelKyoto()
	osaka, cancelOsaka, err := hub.Subscribe(ctx, "osaka")
	require.NoError(t, err)
	defer cancelOsaka()

	require.NoError(t, hub.Publish(ctx, Event{PlanID: "kyoto"}))

	assert.Equal(t, Event{PlanID: "kyoto"}, receive(t, kyoto))
	select {
	case ev := <-osaka:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestHub_CoalescesBursts(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	ch, cancel, err := hub.Subscribe(ctx, "kyoto")
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, hub.Publish(ctx, Event{PlanID: "kyoto"}))
	}
	receive(t, ch)
	select {
	case ev := <-ch:
		t.Fatalf("burst was not coalesced: %+v", ev)
	default:
	}
}

func TestHub_DeletionReplacesPendingWrite(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	ch, cancel, err := hub.Subscribe(ctx, "kyoto")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, hub.Publish(ctx, Event{PlanID: "kyoto"}))
	require.NoError(t, hub.Publish(ctx, Event{PlanID: "kyoto", Deleted: true}))

	assert.True(t, receive(t, ch).Deleted)
}

func TestHub_CancelClosesAndUnregisters(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	ch, cancel, err := hub.Subscribe(ctx, "kyoto")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers("kyoto"))

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers("kyoto"))
	require.NoError(t, hub.Publish(ctx, Event{PlanID: "kyoto"}))
}

func TestHub_ContextCancelUnsubscribes(t *testing.T) {
	hub := NewHub()
	ctx, cancelCtx := context.WithCancel(context.Background())

	ch, _, err := hub.Subscribe(ctx, "kyoto")
	require.NoError(t, err)
	cancelCtx()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after context cancel")
	}
	assert.Eventually(t, func() bool { return hub.Subscribers("kyoto") == 0 }, time.Second, 5*time.Millisecond)
}
