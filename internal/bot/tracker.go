package bot

import "sync"

// Interaction is a tracked engagement kind.
type Interaction int

const (
	InteractionView Interaction = iota
	InteractionContact
	InteractionSave
	InteractionShare
	InteractionReport
)

// StatsSnapshot is a point-in-time copy of a post's counters.
type StatsSnapshot struct {
	Views       int
	Contacts    int
	Saves       int
	Shares      int
	Reports     int
	UniqueUsers int
}

// Total is the sum of all interaction counters.
func (s StatsSnapshot) Total() int {
	return s.Views + s.Contacts + s.Saves + s.Shares + s.Reports
}

type postStats struct {
	views, contacts, saves, shares, reports int
	actors                                  map[int64]struct{}
}

// Tracker counts per-post interactions in memory. Counters reset on restart;
// they are engagement hints, not audit data.
type Tracker struct {
	mu    sync.Mutex
	posts map[int64]*postStats
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{posts: make(map[int64]*postStats)}
}

// Record counts one interaction by userID on postID.
func (t *Tracker) Record(postID, userID int64, kind Interaction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.posts[postID]
	if !ok {
		stats = &postStats{actors: make(map[int64]struct{})}
		t.posts[postID] = stats
	}

	switch kind {
	case InteractionView:
		stats.views++
	case InteractionContact:
		stats.contacts++
	case InteractionSave:
		stats.saves++
	case InteractionShare:
		stats.shares++
	case InteractionReport:
		stats.reports++
	}
	stats.actors[userID] = struct{}{}
}

// Get returns a snapshot of the post's counters. A post with no recorded
// interactions yields zeroes.
func (t *Tracker) Get(postID int64) StatsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.posts[postID]
	if !ok {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		Views:       stats.views,
		Contacts:    stats.contacts,
		Saves:       stats.saves,
		Shares:      stats.shares,
		Reports:     stats.reports,
		UniqueUsers: len(stats.actors),
	}
}

// Remove drops a post's counters, for use after the post is deleted.
func (t *Tracker) Remove(postID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.posts, postID)
}
