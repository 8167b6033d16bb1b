package memory

import (
	"context"
	"sync"
	"time"

	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	// mu serializes writes; reads go straight to the cache
	mu sync.Mutex
}

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired items every ttl/6 (at least once a minute).
func NewSessionRepository(ttl time.Duration) contract.SessionRepository {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

// Save stores a copy so later edits by the caller do not leak into the cache.
func (r *SessionRepository) Save(ctx context.Context, session *store.PickerSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.ID, copySession(session), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.PickerSession, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return copySession(x.(*store.PickerSession)), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Update(ctx context.Context, sessionID string, fn func(*store.PickerSession) error) (*store.PickerSession, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, false, nil
	}
	session := copySession(x.(*store.PickerSession))
	if err := fn(session); err != nil {
		return nil, true, err
	}
	r.cache.Set(sessionID, copySession(session), cache.DefaultExpiration)
	return session, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
	return nil
}

func copySession(s *store.PickerSession) *store.PickerSession {
	c := *s
	c.Selection = s.Selection.Clone()
	return &c
}
