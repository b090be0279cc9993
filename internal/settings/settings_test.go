package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, DefaultItemsPerPage, UserSettings{}.Normalize().ItemsPerPage)
	assert.Equal(t, DefaultItemsPerPage, UserSettings{ItemsPerPage: -3}.Normalize().ItemsPerPage)
	assert.Equal(t, 25, UserSettings{ItemsPerPage: 25}.Normalize().ItemsPerPage)
}

func TestBroadcasterReplaysCurrentValue(t *testing.T) {
	b := NewBroadcaster(UserSettings{ItemsPerPage: 5})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	got := <-ch
	assert.Equal(t, 5, got.ItemsPerPage)
}

func TestBroadcasterDeliversLatest(t *testing.T) {
	b := NewBroadcaster(Default())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	b.Publish(UserSettings{ItemsPerPage: 20})
	b.Publish(UserSettings{ItemsPerPage: 30})

	got := <-ch
	assert.Equal(t, 30, got.ItemsPerPage)
	assert.Equal(t, 30, b.Current().ItemsPerPage)
}

func TestBroadcasterCancelClosesChannel(t *testing.T) {
	b := NewBroadcaster(Default())
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 10*time.Millisecond)

	// publishing after cancel must not block or panic
	b.Publish(UserSettings{ItemsPerPage: 3})
}
