package program

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store holds the authoritative, newest-first list of programs in memory.
type Store struct {
	mu       sync.RWMutex
	programs []Program
	newID    func() string
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the default id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID:  NewID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh time-ordered program id such as "PROG-0190c3a2-...".
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "PROG-" + uuid.NewString()
	}
	return "PROG-" + id.String()
}

// Seed appends programs to the store in the given order. Every program must
// already carry a unique id.
func (s *Store) Seed(programs []Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.programs)+len(programs))
	for _, p := range s.programs {
		seen[p.ID] = true
	}
	for i := range programs {
		p := programs[i]
		if p.ID == "" {
			return fmt.Errorf("seeding program %d: %w", i, invalid("id", "id is required"))
		}
		if seen[p.ID] {
			return fmt.Errorf("seeding program %s: %w", p.ID, invalid("id", "duplicate id"))
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seeding program %s: %w", p.ID, err)
		}
		seen[p.ID] = true
	}
	s.programs = append(s.programs, programs...)
	return nil
}

// Create validates p, assigns it a new id and inserts it at the head of the list.
func (s *Store) Create(p Program) (Program, error) {
	if err := p.Validate(); err != nil {
		return Program{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.uniqueID()
	s.programs = append([]Program{p}, s.programs...)
	s.logger.Debug("program created", zap.String("id", p.ID), zap.String("brand", p.Brand))
	return p, nil
}

// uniqueID draws ids until one is unused. Callers hold s.mu.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) == -1 {
			return id
		}
		s.logger.Warn("program id collision, regenerating", zap.String("id", id))
	}
}

// Update replaces the program with the given id by p, keeping the id.
// Unknown ids leave the store unchanged and return ErrNotFound.
func (s *Store) Update(id string, p Program) (Program, error) {
	if err := p.Validate(); err != nil {
		return Program{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		s.logger.Warn("update of unknown program ignored", zap.String("id", id))
		return Program{}, fmt.Errorf("updating %s: %w", id, ErrNotFound)
	}
	p.ID = id
	s.programs[idx] = p
	s.logger.Debug("program updated", zap.String("id", id))
	return p, nil
}

// Delete removes the program with the given id. Unknown ids leave the store
// unchanged and return ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		s.logger.Warn("delete of unknown program ignored", zap.String("id", id))
		return fmt.Errorf("deleting %s: %w", id, ErrNotFound)
	}
	s.programs = append(s.programs[:idx:idx], s.programs[idx+1:]...)
	s.logger.Debug("program deleted", zap.String("id", id))
	return nil
}

// Get returns a copy of the program with the given id.
func (s *Store) Get(id string) (Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return Program{}, fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	return s.programs[idx], nil
}

// List returns a snapshot of all programs, newest first.
func (s *Store) List() []Program {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Program, len(s.programs))
	copy(out, s.programs)
	return out
}

// Len returns the number of stored programs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.programs)
}

func (s *Store) indexOf(id string) int {
	for i := range s.programs {
		if s.programs[i].ID == id {
			return i
		}
	}
	return -1
}
