package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"notepocket/internal/editor"
)

// SessionRepository keeps live editing sessions in memory with a TTL.
// Expiry is the backstop for clients that navigate away without closing:
// the final save already ran on the last field change, so dropping the
// session loses nothing.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Purge expired sessions at a fraction of the TTL.
	c := cache.New(ttl, ttl/4)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *editor.Session) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*editor.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*editor.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
