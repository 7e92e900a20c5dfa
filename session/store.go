// Package session holds the per-browser session state and the rules that
// decide where a role lands and who may see a dashboard.
package session

import (
	"sync"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
)

// Scratch mirrors the identity loosely. Forms read from it before a full
// identity exists, and profile creation writes Level into it.
type Scratch struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Number   string `json:"number"`
	Mode     string `json:"mode"`
	Level    string `json:"level"`
}

// Store is the session state container. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	identity *models.Identity
	scratch  Scratch
	creds    *gateway.Credentials
}

func NewStore() *Store {
	return &Store{}
}

// SetIdentity replaces the identity wholesale and syncs the scratch fields.
// A nil identity is a logout and clears every scratch field.
func (s *Store) SetIdentity(id *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.identity = nil
		s.scratch = Scratch{}
		s.creds = nil
		return
	}

	cp := *id
	s.identity = &cp
	s.scratch.Fullname = id.Name
	s.scratch.Email = id.Email
	s.scratch.Number = id.Phone
	s.scratch.Mode = string(id.Role)
}

// Identity returns a copy of the current identity, or nil.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

// SetCredentials keeps the login pair for backend routes that authenticate
// by body instead of bearer token. It lives only in memory and is dropped on
// logout.
func (s *Store) SetCredentials(c gateway.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &c
}

func (s *Store) Credentials() *gateway.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	cp := *s.creds
	return &cp
}

func (s *Store) Scratch() Scratch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scratch
}

func (s *Store) UpdateScratch(fn func(*Scratch)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.scratch)
}

