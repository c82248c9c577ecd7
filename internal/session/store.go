// Package session holds the single source of truth for "who is the current
// user and can they make authenticated calls". The store is an explicit
// dependency-injected object, not a package-level singleton, so isolated
// sessions can coexist in tests.
package session

import (
	"log/slog"
	"sync"

	"beacon/internal/domain/entity"
)

// Storage persists the session slice across restarts.
type Storage interface {
	Load() (entity.Session, error)
	Save(entity.Session) error
	Clear() error
}

// Store is a subscribable container for the session state. All reads and
// writes go through the mutex; the snapshot handed out is always a copy.
type Store struct {
	mu      sync.RWMutex
	state   entity.Session
	storage Storage
	logger  *slog.Logger
	subs    map[int]func(entity.Session)
	nextSub int
}

// New creates a store hydrated from storage. A missing or unreadable
// snapshot yields a logged-out session rather than a startup failure.
func New(storage Storage, logger *slog.Logger) *Store {
	store := &Store{
		storage: storage,
		logger:  logger,
		subs:    make(map[int]func(entity.Session)),
	}

	state, err := storage.Load()
	if err != nil {
		logger.Warn("Failed to load persisted session, starting logged out", slog.Any("error", err))
		state = entity.Session{}
	}

	// Re-derive the invariant instead of trusting the blob.
	state.IsAuthenticated = state.AccessToken != "" && state.User != nil
	store.state = state

	return store
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// AccessToken returns the current access token, read fresh at call time.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.AccessToken
}

// RefreshToken returns the current refresh token.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.RefreshToken
}

// SetSession installs a freshly authenticated session, as produced by a
// successful login.
func (s *Store) SetSession(user *entity.User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.state = entity.Session{
		User:            user,
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		IsAuthenticated: accessToken != "" && user != nil,
	}
	state := s.state
	subs := s.subscribers()
	s.persist(state)
	s.mu.Unlock()

	notify(subs, state)
}

// SetAccessToken replaces only the access token, as happens after a token
// refresh. The rest of the session is untouched.
func (s *Store) SetAccessToken(accessToken string) {
	s.mu.Lock()
	s.state.AccessToken = accessToken
	s.state.IsAuthenticated = accessToken != "" && s.state.User != nil
	state := s.state
	subs := s.subscribers()
	s.persist(state)
	s.mu.Unlock()

	notify(subs, state)
}

// SetUser replaces the user snapshot wholesale, as after a profile refetch.
func (s *Store) SetUser(user *entity.User) {
	s.mu.Lock()
	s.state.User = user
	s.state.IsAuthenticated = s.state.AccessToken != "" && user != nil
	state := s.state
	subs := s.subscribers()
	s.persist(state)
	s.mu.Unlock()

	notify(subs, state)
}

// Clear logs the session out. Both tokens are dropped: keeping the refresh
// token past logout would let a cleared session silently re-authenticate.
// Calling Clear on an already-cleared store is a no-op with the same result.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state = entity.Session{}
	state := s.state
	subs := s.subscribers()
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("Failed to clear persisted session", slog.Any("error", err))
	}
	s.mu.Unlock()

	notify(subs, state)
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned func unsubscribes; it is safe to call more than once.
func (s *Store) Subscribe(fn func(entity.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribers copies the subscriber list; callers must hold the lock.
func (s *Store) subscribers() []func(entity.Session) {
	out := make([]func(entity.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}

	return out
}

// persist writes the snapshot best-effort: a storage failure degrades the
// reload experience but must not fail the operation that mutated the session.
// Callers hold the lock, which sequences saves in mutation order; the last
// snapshot on disk is always the last mutation applied.
func (s *Store) persist(state entity.Session) {
	if err := s.storage.Save(state); err != nil {
		s.logger.Warn("Failed to persist session", slog.Any("error", err))
	}
}

func notify(subs []func(entity.Session), state entity.Session) {
	for _, fn := range subs {
		fn(state)
	}
}
