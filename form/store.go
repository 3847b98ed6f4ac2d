package form

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps forms between requests.
type Store interface {
	Create(opts ...Option) *Form
	Get(id string) (*Form, error)
	Delete(id string) error
	Count() int
}

// MemoryStore holds forms in process memory; each form expires ttl after it
// was last touched.
type MemoryStore struct {
	c   *gocache.Cache
	ttl time.Duration

	// serializes Delete's lookup with its removal
	mu sync.Mutex
}

// maxSweepInterval caps how long an expired form waits for OnEvicted.
const maxSweepInterval = time.Minute

// NewMemoryStore returns a store whose forms live for ttl. Expired forms are
// swept every ttl, or every minute when ttl is longer.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(ttl, min(ttl, maxSweepInterval)), ttl: ttl}
}

// OnEvicted registers fn to run when a form expires or is deleted.
func (s *MemoryStore) OnEvicted(fn func(id string)) {
	s.c.OnEvicted(func(k string, _ any) { fn(k) })
}

func (s *MemoryStore) Create(opts ...Option) *Form {
	f := New(uuid.NewString(), opts...)
	s.c.Set(f.ID(), f, s.ttl)
	return f
}

// Get returns the form and extends its lifetime. The touch only succeeds
// while the key is still live, so a concurrent Delete is never undone.
func (s *MemoryStore) Get(id string) (*Form, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	f, ok := v.(*Form)
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.c.Replace(id, f, s.ttl); err != nil {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.Get(id); !ok {
		return ErrNotFound
	}
	s.c.Delete(id)
	return nil
}

// Count returns the number of unexpired forms. Expired forms still waiting
// for the sweeper are not counted.
func (s *MemoryStore) Count() int { return len(s.c.Items()) }
