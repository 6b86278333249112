package demo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no entity has the requested ID.
var ErrNotFound = errors.New("demo: not found")

type entity interface {
	Todo | User
	EntityID() uuid.UUID
}

// Repository stores entities of type T.
type Repository[T entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryRepository keeps entities in insertion order in memory.
type MemoryRepository[T entity] struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]T
	now   func() time.Time
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository[T entity]() *MemoryRepository[T] {
	return &MemoryRepository[T]{
		items: make(map[uuid.UUID]T),
		now:   time.Now,
	}
}

// List returns every entity in insertion order.
func (r *MemoryRepository[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// Get returns a copy of the entity with id.
func (r *MemoryRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// Create stores item, stamping its timestamps.
func (r *MemoryRepository[T]) Create(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := (*item).EntityID()
	if _, exists := r.items[id]; exists {
		return errors.New("demo: duplicate id " + id.String())
	}
	stamp(item, r.now(), true)
	r.items[id] = *item
	r.order = append(r.order, id)
	return nil
}

// Update replaces the stored entity with item.
func (r *MemoryRepository[T]) Update(ctx context.Context, item *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := (*item).EntityID()
	if _, exists := r.items[id]; !exists {
		return ErrNotFound
	}
	stamp(item, r.now(), false)
	r.items[id] = *item
	return nil
}

// Delete removes the entity with id.
func (r *MemoryRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrNotFound
	}
	delete(r.items, id)
	for i, candidate := range r.order {
		if candidate == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func stamp[T entity](item *T, now time.Time, created bool) {
	switch v := any(item).(type) {
	case *Todo:
		if created {
			v.CreatedAt = now
		}
		v.UpdatedAt = now
	case *User:
		if created {
			v.CreatedAt = now
		}
		v.UpdatedAt = now
	}
}
