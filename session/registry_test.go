package session

import (
	"CasaFacil/models"
	"CasaFacil/repository"
	"CasaFacil/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	users map[string]models.User
	calls int
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	s.calls++
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func TestSignInCreatesStoreWithUser(t *testing.T) {
	users := &stubUsers{}
	r := NewRegistry(users, time.Hour, 0)
	defer r.Stop()

	r.HandleSessionEvent(services.SessionEvent{SessionID: "s1", User: &models.User{ID: "u1", DisplayName: "Ana"}})

	s, err := r.Get(context.Background(), "s1", "u1")
	require.NoError(t, err)
	require.NotNil(t, s.Snapshot().User)
	assert.Equal(t, "Ana", s.Snapshot().User.DisplayName)
	assert.Zero(t, users.calls)
}

func TestSignOutClearsUserAndDropsStore(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{"u1": {ID: "u1"}}}
	r := NewRegistry(users, time.Hour, 0)
	defer r.Stop()

	r.HandleSessionEvent(services.SessionEvent{SessionID: "s1", User: &models.User{ID: "u1"}})
	s, err := r.Get(context.Background(), "s1", "u1")
	require.NoError(t, err)

	r.HandleSessionEvent(services.SessionEvent{SessionID: "s1"})
	assert.Nil(t, s.Snapshot().User)

	rebuilt, err := r.Get(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.NotSame(t, s, rebuilt)
	assert.Equal(t, 1, users.calls)
}

func TestGetRebuildsMissingStore(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{"u1": {ID: "u1", Role: models.RoleTenant}}}
	r := NewRegistry(users, time.Hour, 0)
	defer r.Stop()

	s, err := r.Get(context.Background(), "s9", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, s.Snapshot().User.Role)

	again, err := r.Get(context.Background(), "s9", "u1")
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Equal(t, 1, users.calls)
}

func TestGetUnknownUser(t *testing.T) {
	r := NewRegistry(&stubUsers{}, time.Hour, 0)
	defer r.Stop()

	_, err := r.Get(context.Background(), "s1", "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
