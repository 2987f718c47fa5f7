package catalog

import (
	"errors"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const searchCacheSize = 256

// collection is an insertion-ordered set of records keyed by a normalised identifier.
// Keyword searches are memoised until the next Add.
type collection[V any] struct {
	mu    sync.RWMutex
	order []V
	index map[string]int

	key      func(V) string
	haystack func(V) []string
	searches *lru.Cache[string, []V]
}

func newCollection[V any](key func(V) string, haystack func(V) []string) *collection[V] {
	cache, err := lru.New[string, []V](searchCacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &collection[V]{
		index:    make(map[string]int),
		key:      key,
		haystack: haystack,
		searches: cache,
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *collection[V]) add(v V) error {
	k := c.key(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[k]; ok {
		return ErrDuplicate
	}
	c.index[k] = len(c.order)
	c.order = append(c.order, v)
	c.searches.Purge()
	return nil
}

func (c *collection[V]) get(k string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return c.order[i], true
}

func (c *collection[V]) all() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]V(nil), c.order...)
}

func (c *collection[V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// search returns records whose haystack fields contain keyword, ignoring case, in catalog order.
// An empty keyword matches everything.
func (c *collection[V]) search(keyword string) []V {
	kw := normalizeKey(keyword)
	if kw == "" {
		return c.all()
	}
	if hit, ok := c.searches.Get(kw); ok {
		return append([]V(nil), hit...)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []V
	for _, v := range c.order {
		for _, field := range c.haystack(v) {
			if strings.Contains(strings.ToLower(field), kw) {
				out = append(out, v)
				break
			}
		}
	}
	// Cached under the read lock so a concurrent add cannot purge before this lands.
	c.searches.Add(kw, out)
	return append([]V(nil), out...)
}

// filter returns the records matching keep, in catalog order.
func (c *collection[V]) filter(keep func(V) bool) []V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []V
	for _, v := range c.order {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
