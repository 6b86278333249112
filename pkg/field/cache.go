package field

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/goliatone/go-submissions/pkg/validation"
)

// ErrInvalid is returned by Cache.AssertValid when at least one field has
// errors. The details stay in the cache.
var ErrInvalid = errors.New("field: one or more fields failed to pass validation")

// Cache stores the fields of one request and their pending error lists. It is
// safe for concurrent use but must not be shared between requests.
type Cache struct {
	mu     sync.RWMutex
	fields map[string]Field
	errors map[string]*Pending
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		fields: make(map[string]Field),
		errors: make(map[string]*Pending),
	}
}

// SetField stores f under its key, replacing any previous field.
func (c *Cache) SetField(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[f.Key()] = f
}

// Field returns the field stored under key.
func (c *Cache) Field(key string) (Field, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fields[key]
	return f, ok
}

// SetErrors attaches a pending error list to key. When key already has one,
// the lists are merged: the stored list settles to the existing errors
// followed by the new ones.
func (c *Cache) SetErrors(key string, pending *Pending) {
	if pending == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[key] = Merge(c.errors[key], pending)
}

// Errors returns the pending error list for key.
func (c *Cache) Errors(key string) (*Pending, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.errors[key]
	return p, ok
}

// Keys returns every key with a field or an error list, sorted.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.fields)+len(c.errors))
	for key := range c.fields {
		seen[key] = struct{}{}
	}
	for key := range c.errors {
		seen[key] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Populate stores fields without touching error lists, which is how blank
// and edit forms are prepared.
func (c *Cache) Populate(fields ...Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range fields {
		c.fields[f.Key()] = f
	}
}

// AwaitAll waits for every error list and returns the reasons per key,
// including keys whose list is empty. The first hard error is returned as is.
func (c *Cache) AwaitAll(ctx context.Context) (map[string][]string, error) {
	c.mu.RLock()
	snapshot := make(map[string]*Pending, len(c.errors))
	for key, p := range c.errors {
		snapshot[key] = p
	}
	c.mu.RUnlock()

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string][]string, len(snapshot))
	for _, key := range keys {
		errs, err := snapshot[key].Wait(ctx)
		if err != nil {
			return nil, err
		}
		out[key] = validation.Reasons(errs)
	}
	return out, nil
}

// AssertValid returns nil when no field has errors, ErrInvalid when some do,
// and any hard error raised while waiting.
func (c *Cache) AssertValid(ctx context.Context) error {
	all, err := c.AwaitAll(ctx)
	if err != nil {
		return err
	}
	for _, reasons := range all {
		if len(reasons) > 0 {
			return ErrInvalid
		}
	}
	return nil
}
