package session

import (
	"errors"
	"sync"
	"time"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkguid"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/cache"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
)

var ErrNotFound = errors.New("session not found")

// Store keeps the travel preferences gathered during one conversation.
// Everything is in memory with a TTL; a restart wipes it, which matches the
// lifetime of the conversations it serves.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache[*entity.Session]
	ttl   time.Duration
	uid   pkguid.StringID
	now   func() time.Time
}

func NewStore(ttl time.Duration, uid pkguid.StringID) *Store {
	return &Store{
		cache: cache.New(cloneSession),
		ttl:   ttl,
		uid:   uid,
		now:   time.Now,
	}
}

// Record stores one preference, creating the session when id is empty or
// unknown. Each write refreshes the session TTL.
func (s *Store) Record(id, name, value string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess *entity.Session
	if id != "" {
		if existing, ok := s.cache.Get(id); ok {
			sess = existing
		}
	}
	if sess == nil {
		if id == "" {
			id = s.uid.Generate()
		}
		sess = &entity.Session{
			ID:          id,
			Preferences: map[string]string{},
			CreatedAt:   s.now(),
		}
	}

	sess.Preferences[name] = value
	sess.UpdatedAt = s.now()
	s.cache.Set(sess.ID, sess, s.ttl)

	return cloneSession(sess), nil
}

// Get returns a copy of the session; mutating it never reaches the store.
func (s *Store) Get(id string) (*entity.Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) End(id string) error {
	if _, ok := s.cache.Get(id); !ok {
		return ErrNotFound
	}
	s.cache.Delete(id)
	return nil
}

func cloneSession(sess *entity.Session) *entity.Session {
	if sess == nil {
		return nil
	}
	clone := &entity.Session{
		ID:          sess.ID,
		Preferences: make(map[string]string, len(sess.Preferences)),
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
	}
	for name, value := range sess.Preferences {
		clone.Preferences[name] = value
	}
	return clone
}
