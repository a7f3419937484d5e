package index

import (
	"fmt"
	"time"

	"github.com/futig/docqa/internal/entity"
	"github.com/patrickmn/go-cache"
)

// Store keeps built indexes for the lifetime of a session, addressed by Index.ID.
// Only fully built indexes are stored, so readers never see a partial one.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a store evicting indexes after ttl of inactivity
func NewStore(ttl time.Duration) *Store {
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Store{cache: cache.New(ttl, cleanup)}
}

// Put publishes a built index
func (s *Store) Put(idx *Index) {
	s.cache.SetDefault(idx.ID, idx)
}

// Get looks an index up and refreshes its expiration
func (s *Store) Get(id string) (*Index, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrIndexNotFound, id)
	}
	idx := v.(*Index)
	s.cache.SetDefault(id, idx)
	return idx, nil
}

// Delete drops an index
func (s *Store) Delete(id string) error {
	if _, ok := s.cache.Get(id); !ok {
		return fmt.Errorf("%w: %s", entity.ErrIndexNotFound, id)
	}
	s.cache.Delete(id)
	return nil
}

// Len returns the number of live indexes
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
