package cache

import (
	"github.com/puzpuzpuz/xsync"

	"github.com/quartzlab/discordkit/internal/entity"
	"github.com/quartzlab/discordkit/pkg/errorx"
)

// Cloneable lets the store hand out private copies so no reader ever observes
// a half-written entity.
type Cloneable[T any] interface {
	Clone() T
}

// Store is a keyed mirror of one entity kind. Writes publish a fresh copy by
// pointer swap; reads clone on the way out. There is exactly one mutating
// path (the gateway dispatch loop), so load-clone-store mutations cannot lose
// updates, while REST helpers and caller code read concurrently.
type Store[T Cloneable[T]] struct {
	items *xsync.MapOf[string, T]
}

func NewStore[T Cloneable[T]]() *Store[T] {
	return &Store[T]{items: xsync.NewMapOf[T]()}
}

// Put upserts with replace-whole-object semantics.
func (s *Store[T]) Put(id entity.ID, v T) {
	s.items.Store(id.String(), v.Clone())
}

// Get returns a copy of the entity or errorx.ErrNotFound. A miss means "not
// yet synced", not corruption.
func (s *Store[T]) Get(id entity.ID) (T, error) {
	v, ok := s.items.Load(id.String())
	if !ok {
		var zero T
		return zero, errorx.ErrNotFound
	}

	return v.Clone(), nil
}

// Mutate applies an in-place partial update. On a miss the store is left
// unchanged and errorx.ErrNotFound is returned.
func (s *Store[T]) Mutate(id entity.ID, fn func(T)) error {
	v, ok := s.items.Load(id.String())
	if !ok {
		return errorx.ErrNotFound
	}

	c := v.Clone()
	fn(c)
	s.items.Store(id.String(), c)
	return nil
}

// Remove deletes the entity; removing an absent id is a no-op.
func (s *Store[T]) Remove(id entity.ID) {
	s.items.Delete(id.String())
}

// List returns an unordered snapshot of all entities of this kind.
func (s *Store[T]) List() []T {
	out := make([]T, 0, s.items.Size())
	s.items.Range(func(_ string, v T) bool {
		out = append(out, v.Clone())
		return true
	})

	return out
}

func (s *Store[T]) Len() int {
	return s.items.Size()
}
