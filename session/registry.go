package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dcode-github/dormdash/gateway"
)

// DefaultIdleTimeout is how long a registered session survives without a
// request.
const DefaultIdleTimeout = 24 * time.Hour

// Session is everything the shell keeps for one browser. An anonymous
// session has no ID and lives for one request only.
type Session struct {
	ID     string
	Store  *Store
	Tokens gateway.TokenStore

	lastSeen time.Time // guarded by Registry.mu
}

// Anonymous reports whether the session was never registered.
func (s *Session) Anonymous() bool {
	return s.ID == ""
}

// TokenFactory builds the persisted token store scoped to a session ID.
type TokenFactory func(sessionID string) gateway.TokenStore

// Registry maps session IDs to sessions. Only sessions that authenticated
// are registered, and each is dropped once it has been idle too long.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tokens   TokenFactory
	idle     time.Duration
	now      func() time.Time
}

// NewRegistry returns an empty registry. A nil factory gives every session
// its own in-memory token store; a non-positive idle uses
// DefaultIdleTimeout.
func NewRegistry(tokens TokenFactory, idle time.Duration) *Registry {
	if tokens == nil {
		tokens = func(string) gateway.TokenStore { return gateway.NewMemoryTokenStore() }
	}
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Registry{
		sessions: make(map[string]*Session),
		tokens:   tokens,
		idle:     idle,
		now:      time.Now,
	}
}

func anonymous() *Session {
	return &Session{Store: NewStore(), Tokens: gateway.NewMemoryTokenStore()}
}

// Resolve returns the registered session for id and true. An unknown id
// is adopted only when the token store already holds a token under it, so
// persisted logins survive a restart while an id the client made up never
// becomes a session. In every other case Resolve returns a new anonymous
// session that is not registered, and false.
func (r *Registry) Resolve(ctx context.Context, id string) (*Session, bool, error) {
	if id == "" {
		return anonymous(), false, nil
	}

	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		if r.now().Sub(s.lastSeen) <= r.idle {
			s.lastSeen = r.now()
			r.mu.Unlock()
			return s, true, nil
		}
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if _, err := uuid.Parse(id); err != nil {
		return anonymous(), false, nil
	}

	tokens := r.tokens(id)
	_, ok, err := tokens.Token(ctx)
	if err != nil {
		return anonymous(), false, fmt.Errorf("look up token for session %s: %w", id, err)
	}
	if !ok {
		return anonymous(), false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return s, true, nil
	}
	s := &Session{ID: id, Store: NewStore(), Tokens: tokens, lastSeen: r.now()}
	r.sessions[id] = s
	return s, true, nil
}

// Establish registers s under a freshly generated ID, moving its token and
// state along. The old ID, if s had one, is dropped and its token cleared.
// Call it whenever a session authenticates; the returned session's ID is
// the one to hand back to the browser.
func (r *Registry) Establish(ctx context.Context, s *Session) (*Session, error) {
	token, hasToken, err := s.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}

	id := uuid.New().String()
	next := &Session{ID: id, Store: s.Store, Tokens: r.tokens(id)}
	if hasToken {
		if err := next.Tokens.SetToken(ctx, token); err != nil {
			return nil, fmt.Errorf("move session token: %w", err)
		}
	}
	if err := s.Tokens.ClearToken(ctx); err != nil {
		return nil, fmt.Errorf("clear previous session token: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID != "" {
		delete(r.sessions, s.ID)
	}
	next.lastSeen = r.now()
	r.sessions[id] = next
	return next, nil
}

func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep drops every session idle longer than the timeout and clears its
// persisted token. It returns how many sessions were dropped.
func (r *Registry) Sweep(ctx context.Context) (int, error) {
	r.mu.Lock()
	var expired []*Session
	now := r.now()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idle {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	var errs []error
	for _, s := range expired {
		if err := s.Tokens.ClearToken(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear token for session %s: %w", s.ID, err))
		}
	}
	return len(expired), errors.Join(errs...)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
