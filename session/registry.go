// Package session keeps one application store per signed-in session.
package session

import (
	"CasaFacil/models"
	"CasaFacil/services"
	"CasaFacil/store"
	"context"
	"time"

	"github.com/karlseguin/ccache/v3"
)

type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Registry struct {
	cache *ccache.Cache[*store.Store]
	users UserLoader
	ttl   time.Duration
}

func NewRegistry(users UserLoader, ttl time.Duration, maxSessions int64) *Registry {
	if maxSessions <= 0 {
		maxSessions = 10000
	}
	return &Registry{
		cache: ccache.New(ccache.Configure[*store.Store]().MaxSize(maxSessions)),
		users: users,
		ttl:   ttl,
	}
}

// HandleSessionEvent follows the identity session-change stream.
func (r *Registry) HandleSessionEvent(ev services.SessionEvent) {
	if ev.User != nil {
		s := store.New()
		s.SetUser(ev.User)
		r.cache.Set(ev.SessionID, s, r.ttl)
		return
	}
	if item := r.cache.Get(ev.SessionID); item != nil {
		item.Value().SetUser(nil)
	}
	r.cache.Delete(ev.SessionID)
}

// Get returns the store of a session, rebuilding it from the users
// collection when it is not in memory.
func (r *Registry) Get(ctx context.Context, sessionID, userID string) (*store.Store, error) {
	item, err := r.cache.Fetch(sessionID, r.ttl, func() (*store.Store, error) {
		user, err := r.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		s := store.New()
		s.SetUser(user)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return item.Value(), nil
}

func (r *Registry) Stop() {
	r.cache.Stop()
}
