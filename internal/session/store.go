package session

import (
	"context"
	"sync"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/google/uuid"
	"github.com/samber/do"
)

// Factory builds the controller backing a new session.
type Factory func() *controller.Controller

// Store keeps one controller per browser session for the life of the process.
type Store struct {
	factory Factory

	mu       sync.RWMutex
	sessions map[string]*controller.Controller
}

func NewStore(i *do.Injector) (*Store, error) {
	return New(do.MustInvoke[Factory](i)), nil
}

func New(factory Factory) *Store {
	return &Store{factory: factory, sessions: make(map[string]*controller.Controller)}
}

func (s *Store) Get(id string) (*controller.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.sessions[id]
	return c, ok
}

func (s *Store) Create(ctx context.Context) (string, *controller.Controller) {
	id := uuid.NewString()
	c := s.factory()

	s.mu.Lock()
	s.sessions[id] = c
	s.mu.Unlock()

	log.FromContextOrDiscard(ctx).WithGroup("sessions").Info("created session", "id", id)
	return id, c
}

// GetOrCreate returns the session for id, starting a fresh one when id is
// unknown. The returned id is the one the caller should remember.
func (s *Store) GetOrCreate(ctx context.Context, id string) (string, *controller.Controller) {
	if c, ok := s.Get(id); ok {
		return id, c
	}
	return s.Create(ctx)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
