package service

import (
	"sync"
)

// Record kinds used for snapshot routing and cache keys.
const (
	KindWorkplace = "workplaces"
	KindTimeSlot  = "timeslots"
	KindAdhoc     = "adhocs"
	KindWorkShift = "workshifts"
)

// Snapshot is a full keyed collection of one record kind for one user,
// delivered whole on every change rather than as a diff.
type Snapshot struct {
	Kind    string      `json:"kind"`
	Records interface{} `json:"records"`
}

type subscriber struct {
	ch chan Snapshot
}

// SnapshotHub fans full record snapshots out to live subscribers. Each
// subscriber channel holds at most one pending snapshot: when a consumer
// lags, the stale snapshot is replaced so the last one wins.
type SnapshotHub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]*subscriber
}

// NewSnapshotHub constructs an empty hub.
func NewSnapshotHub() *SnapshotHub {
	return &SnapshotHub{subs: make(map[string]map[int]*subscriber)}
}

func hubKey(userID, kind string) string {
	return userID + "/" + kind
}

// Subscribe registers a listener for one user's record kind. The returned
// cancel function detaches the listener and closes its channel.
func (h *SnapshotHub) Subscribe(userID, kind string) (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := hubKey(userID, kind)
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]*subscriber)
	}
	id := h.nextID
	h.nextID++

	sub := &subscriber{ch: make(chan Snapshot, 1)}
	h.subs[key][id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[key][id]; ok {
			delete(h.subs[key], id)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers a fresh snapshot to every subscriber of the user's kind.
func (h *SnapshotHub) Publish(userID, kind string, records interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot := Snapshot{Kind: kind, Records: records}
	for _, sub := range h.subs[hubKey(userID, kind)] {
		select {
		case sub.ch <- snapshot:
		default:
			// Drop the undelivered snapshot; only the latest matters.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snapshot
		}
	}
}

// SubscriberCount reports active listeners for a user's kind.
func (h *SnapshotHub) SubscriberCount(userID, kind string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[hubKey(userID, kind)])
}
