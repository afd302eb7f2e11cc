package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHubDeliversToSubscribers(t *testing.T) {
	hub := NewSnapshotHub()

	ch, cancel := hub.Subscribe("user-1", KindWorkplace)
	defer cancel()

	hub.Publish("user-1", KindWorkplace, map[string]string{"wp-1": "Corner Cafe"})

	snapshot := <-ch
	assert.Equal(t, KindWorkplace, snapshot.Kind)
	assert.Equal(t, map[string]string{"wp-1": "Corner Cafe"}, snapshot.Records)
}

func TestSnapshotHubScopesByUserAndKind(t *testing.T) {
	hub := NewSnapshotHub()

	otherUser, cancelUser := hub.Subscribe("user-2", KindWorkplace)
	defer cancelUser()
	otherKind, cancelKind := hub.Subscribe("user-1", KindAdhoc)
	defer cancelKind()

	hub.Publish("user-1", KindWorkplace, nil)

	select {
	case <-otherUser:
		t.Fatal("snapshot leaked across users")
	default:
	}
	select {
	case <-otherKind:
		t.Fatal("snapshot leaked across kinds")
	default:
	}
}

func TestSnapshotHubLastSnapshotWins(t *testing.T) {
	hub := NewSnapshotHub()

	ch, cancel := hub.Subscribe("user-1", KindWorkShift)
	defer cancel()

	// Two publishes without a read; the lagging subscriber sees only the
	// latest state.
	hub.Publish("user-1", KindWorkShift, "stale")
	hub.Publish("user-1", KindWorkShift, "fresh")

	snapshot := <-ch
	assert.Equal(t, "fresh", snapshot.Records)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra snapshot: %v", extra)
	default:
	}
}

func TestSnapshotHubCancelClosesChannel(t *testing.T) {
	hub := NewSnapshotHub()

	ch, cancel := hub.Subscribe("user-1", KindTimeSlot)
	require.Equal(t, 1, hub.SubscriberCount("user-1", KindTimeSlot))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount("user-1", KindTimeSlot))

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is a no-op.
	cancel()
}
