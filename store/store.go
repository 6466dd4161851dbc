// Package store holds the per-session application state: the signed-in
// user, the cached listing collection, the assistant transcript and a couple
// of UI flags.
package store

import (
	"CasaFacil/models"
	"slices"
	"sync"
)

// Snapshot is the complete value of a Store at one point in time.
type Snapshot struct {
	User         *models.User         `json:"user"`
	Properties   []models.Property    `json:"properties"`
	ChatMessages []models.ChatMessage `json:"chatMessages"`
	IsChatOpen   bool                 `json:"isChatOpen"`
	IsLoading    bool                 `json:"isLoading"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Properties = slices.Clone(s.Properties)
	out.ChatMessages = slices.Clone(s.ChatMessages)
	return out
}

// Store is a mutable container with a closed set of mutations. Each mutation
// builds a new snapshot and swaps it in whole, so readers never observe a
// half-applied change.
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

func New() *Store {
	return &Store{
		snap: Snapshot{
			Properties:   []models.Property{},
			ChatMessages: []models.ChatMessage{},
		},
		subs: make(map[int]func(Snapshot)),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Subscribe registers fn to be called with the new snapshot after every
// mutation. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(fn func(Snapshot) Snapshot) {
	s.mu.Lock()
	next := fn(s.snap)
	s.snap = next
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next.clone())
	}
}

// SetUser replaces the current identity. nil means signed out.
func (s *Store) SetUser(user *models.User) {
	var u *models.User
	if user != nil {
		cp := *user
		u = &cp
	}
	s.update(func(snap Snapshot) Snapshot {
		snap.User = u
		return snap
	})
}

func (s *Store) SetProperties(props []models.Property) {
	next := slices.Clone(props)
	if next == nil {
		next = []models.Property{}
	}
	s.update(func(snap Snapshot) Snapshot {
		snap.Properties = next
		return snap
	})
}

// AddProperty appends p. Callers are responsible for id uniqueness.
func (s *Store) AddProperty(p models.Property) {
	s.update(func(snap Snapshot) Snapshot {
		next := make([]models.Property, 0, len(snap.Properties)+1)
		next = append(next, snap.Properties...)
		snap.Properties = append(next, p)
		return snap
	})
}

// UpdateProperty merges patch into the property with the given id. Unknown
// ids leave the collection untouched.
func (s *Store) UpdateProperty(id string, patch models.PropertyPatch) {
	s.update(func(snap Snapshot) Snapshot {
		idx := slices.IndexFunc(snap.Properties, func(p models.Property) bool { return p.ID == id })
		if idx < 0 {
			return snap
		}
		next := slices.Clone(snap.Properties)
		for i := range next {
			if next[i].ID == id {
				next[i] = patch.Apply(next[i])
			}
		}
		snap.Properties = next
		return snap
	})
}

func (s *Store) DeleteProperty(id string) {
	s.update(func(snap Snapshot) Snapshot {
		if !slices.ContainsFunc(snap.Properties, func(p models.Property) bool { return p.ID == id }) {
			return snap
		}
		next := make([]models.Property, 0, len(snap.Properties))
		for _, p := range snap.Properties {
			if p.ID != id {
				next = append(next, p)
			}
		}
		snap.Properties = next
		return snap
	})
}

func (s *Store) AddChatMessage(msg models.ChatMessage) {
	s.update(func(snap Snapshot) Snapshot {
		next := make([]models.ChatMessage, 0, len(snap.ChatMessages)+1)
		next = append(next, snap.ChatMessages...)
		snap.ChatMessages = append(next, msg)
		return snap
	})
}

func (s *Store) ClearChat() {
	s.update(func(snap Snapshot) Snapshot {
		snap.ChatMessages = []models.ChatMessage{}
		return snap
	})
}

func (s *Store) ToggleChat() {
	s.update(func(snap Snapshot) Snapshot {
		snap.IsChatOpen = !snap.IsChatOpen
		return snap
	})
}

// SetIsLoading is never derived from other state; callers set and clear it
// around their own asynchronous work.
func (s *Store) SetIsLoading(loading bool) {
	s.update(func(snap Snapshot) Snapshot {
		snap.IsLoading = loading
		return snap
	})
}
