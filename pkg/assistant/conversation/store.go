// Package conversation holds the per-user multi-turn context used by the
// intent detector: the last detected intent, a pending yes/no confirmation
// flag, and a short interaction history.
package conversation

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// HistoryLimit caps how many interactions are kept per user.
const HistoryLimit = 5

// RecencyBoost is the score nudge applied to the most recently seen intent.
const RecencyBoost = 0.2

// IntentRef is a lightweight reference to a detected intent.
type IntentRef struct {
	Primary string `json:"primary"`
	Sub     string `json:"sub,omitempty"`
}

// HistoryEntry records one past interaction.
type HistoryEntry struct {
	Intent    IntentRef `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// Context is the mutable per-user conversation state. One record per user,
// created on first interaction, held in process memory until cleared.
type Context struct {
	UserID              string         `json:"user_id"`
	LastIntent          *IntentRef     `json:"last_intent"`
	PendingConfirmation bool           `json:"pending_confirmation"`
	History             []HistoryEntry `json:"history"`
	LastActivity        time.Time      `json:"last_activity"`
	Interactions        int            `json:"interactions"`
}

// Update carries the fields to merge into a user's context. Nil fields are
// left untouched.
type Update struct {
	LastIntent          *IntentRef
	PendingConfirmation *bool
}

// Resolution is the outcome of resolving a pending confirmation.
type Resolution struct {
	UseSuggested bool
	LastIntent   *IntentRef
	Clarify      bool
	Message      string
}

// UserSnapshot is the administrative view of one tracked user.
type UserSnapshot struct {
	LastActivity        time.Time `json:"last_activity"`
	Interactions        int       `json:"interactions"`
	PendingConfirmation bool      `json:"pending_confirmation"`
}

// Snapshot aggregates store state for administrative inspection.
type Snapshot struct {
	TotalUsers int                     `json:"total_users"`
	Users      map[string]UserSnapshot `json:"users"`
}

// Store keeps one Context per user id. Contexts never expire on their own;
// they live until Clear is called or the process restarts.
//
// Every operation takes a store-wide mutex so concurrent requests for the
// same user serialize deterministically instead of racing on read-modify-write.
type Store struct {
	mu       sync.Mutex
	contexts *cache.Cache
}

// NewStore creates an empty context store.
func NewStore() *Store {
	return &Store{
		contexts: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the context for a user, or nil when the user is unknown or the
// id is empty. Never fails.
func (s *Store) Get(userID string) *Context {
	if userID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID)
}

func (s *Store) get(userID string) *Context {
	if x, found := s.contexts.Get(userID); found {
		return x.(*Context)
	}
	return nil
}

// Set merges an update into the user's context, creating the record on first
// use. When the update carries a LastIntent, the intent is also appended to
// the history, evicting the oldest entry past the cap. Empty user ids are a
// silent no-op.
func (s *Store) Set(userID string, update Update) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.get(userID)
	if ctx == nil {
		ctx = &Context{UserID: userID}
	}

	if update.LastIntent != nil {
		ctx.LastIntent = update.LastIntent
		ctx.History = append(ctx.History, HistoryEntry{
			Intent:    *update.LastIntent,
			Timestamp: time.Now(),
		})
		if len(ctx.History) > HistoryLimit {
			ctx.History = ctx.History[len(ctx.History)-HistoryLimit:]
		}
		ctx.Interactions++
	}
	if update.PendingConfirmation != nil {
		ctx.PendingConfirmation = *update.PendingConfirmation
	}
	ctx.LastActivity = time.Now()

	s.contexts.Set(userID, ctx, cache.NoExpiration)
}

// ResolveConfirmation consumes a pending confirmation for the user. Returns
// nil when nothing is pending. The pending flag is always cleared first,
// regardless of the reply: an affirmative reply signals the caller to proceed
// with the previously suggested intent, a negative one asks for a rephrase.
func (s *Store) ResolveConfirmation(userID string, isPositive bool) *Resolution {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.get(userID)
	if ctx == nil || !ctx.PendingConfirmation {
		return nil
	}

	ctx.PendingConfirmation = false
	s.contexts.Set(userID, ctx, cache.NoExpiration)

	if isPositive {
		return &Resolution{
			UseSuggested: true,
			LastIntent:   ctx.LastIntent,
		}
	}
	return &Resolution{
		Clarify: true,
		Message: "No problem. Could you rephrase your question so I can help better?",
	}
}

// ContextualBoost returns a small score nudge for the intent seen in the most
// recent history entry. Only the newest entry counts; older history is not
// decayed into the result. Empty map when the user has no history.
func (s *Store) ContextualBoost(userID string) map[string]float64 {
	boost := map[string]float64{}
	if userID == "" {
		return boost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := s.get(userID)
	if ctx == nil || len(ctx.History) == 0 {
		return boost
	}

	last := ctx.History[len(ctx.History)-1]
	boost[last.Intent.Primary] = RecencyBoost
	return boost
}

// Clear removes one user's context, or every context when userID is empty.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == "" {
		s.contexts.Flush()
		return
	}
	s.contexts.Delete(userID)
}

// Snapshot returns aggregate stats over all tracked users.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.contexts.Items()
	snap := Snapshot{
		TotalUsers: len(items),
		Users:      make(map[string]UserSnapshot, len(items)),
	}
	for userID, item := range items {
		ctx := item.Object.(*Context)
		snap.Users[userID] = UserSnapshot{
			LastActivity:        ctx.LastActivity,
			Interactions:        ctx.Interactions,
			PendingConfirmation: ctx.PendingConfirmation,
		}
	}
	return snap
}
