package bot

import (
	"fmt"
	"sync"
	"time"

	"barterbot/internal/domain"
)

// Step is the user's position in a conversation flow.
type Step int

const (
	StepNone Step = iota

	// Post creation flow, in order.
	StepTitle
	StepDescription
	StepPricing
	StepPriceRange
	StepPortfolio
	StepContact
	StepTags
	StepVisibility

	// Search flow.
	StepSearchType
	StepSearchTitles
	StepSearchFull

	// Keyword alert inputs.
	StepAlertAdd
	StepAlertReplace
)

// Session is a user's in-flight conversation state. Draft accumulates the
// post fields during creation; Private is set by the admin test-post command.
type Session struct {
	Step      Step
	Draft     domain.Post
	Private   bool
	StartedAt time.Time
	UpdatedAt time.Time
}

// EditSession is an in-flight single-field edit. Original holds the value at
// edit start, shown in the prompt.
type EditSession struct {
	UserID    int64
	PostID    int64
	Field     string
	Original  string
	StartedAt time.Time
}

// PendingReport marks that the user's next free-text message is a report
// reason.
type PendingReport struct {
	PostID    int64
	StartedAt time.Time
}

// SessionStore holds all per-user conversation state in memory. It is safe
// for concurrent use; the returned pointers are owned by the single handler
// goroutine.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	edits    map[string]*EditSession
	reports  map[int64]PendingReport
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		edits:    make(map[string]*EditSession),
		reports:  make(map[int64]PendingReport),
		now:      time.Now,
	}
}

// Start replaces any existing session for the user with a fresh one at step.
func (s *SessionStore) Start(userID int64, step Step) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{Step: step, StartedAt: now, UpdatedAt: now}
	s.sessions[userID] = sess
	return sess
}

// Get returns the user's session, if any.
func (s *SessionStore) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if ok {
		sess.UpdatedAt = s.now()
	}
	return sess, ok
}

// Clear removes the user's session.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func editKey(userID, postID int64, field string) string {
	return fmt.Sprintf("%d_%d_%s", userID, postID, field)
}

// StartEdit opens an edit session, replacing any other edit the user had in
// flight. One edit at a time keeps the next free-text message unambiguous.
func (s *SessionStore) StartEdit(userID, postID int64, field, original string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.edits {
		if e.UserID == userID {
			delete(s.edits, key)
		}
	}
	s.edits[editKey(userID, postID, field)] = &EditSession{
		UserID:    userID,
		PostID:    postID,
		Field:     field,
		Original:  original,
		StartedAt: s.now(),
	}
}

// GetEdit returns the user's in-flight edit, if any.
func (s *SessionStore) GetEdit(userID int64) (*EditSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.edits {
		if e.UserID == userID {
			return e, true
		}
	}
	return nil, false
}

// ClearEdit closes the user's in-flight edit.
func (s *SessionStore) ClearEdit(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.edits {
		if e.UserID == userID {
			delete(s.edits, key)
		}
	}
}

// StartReport marks the user's next message as a report reason for postID.
func (s *SessionStore) StartReport(userID, postID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[userID] = PendingReport{PostID: postID, StartedAt: s.now()}
}

// GetReport returns the user's pending report, if any.
func (s *SessionStore) GetReport(userID int64) (PendingReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[userID]
	return r, ok
}

// ClearReport removes the user's pending report.
func (s *SessionStore) ClearReport(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, userID)
}

// Sweep drops conversation, edit and report state older than maxAge and
// returns how many entries were removed.
func (s *SessionStore) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxAge)
	removed := 0

	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	for key, e := range s.edits {
		if e.StartedAt.Before(cutoff) {
			delete(s.edits, key)
			removed++
		}
	}
	for userID, r := range s.reports {
		if r.StartedAt.Before(cutoff) {
			delete(s.reports, userID)
			removed++
		}
	}
	return removed
}
