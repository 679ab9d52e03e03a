// Package memory is the in-process store used when no database is configured.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
)

const (
	tableConversations = "conversations"
	tableMessages      = "messages"
	tableDocuments     = "documents"
	tableKnowledge     = "knowledge"
	tableUsers         = "users"
)

// Store keeps one non-expiring cache per table. Multi-key operations take the
// store lock; single reads rely on go-cache's own locking.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*cache.Cache
}

func NewStore() *Store {
	tables := make(map[string]*cache.Cache)
	for _, t := range []string{tableConversations, tableMessages, tableDocuments, tableKnowledge, tableUsers} {
		tables[t] = cache.New(cache.NoExpiration, 0)
	}
	return &Store{tables: tables}
}

func (s *Store) table(name string) *cache.Cache {
	return s.tables[name]
}

func (s *Store) put(table, key string, v interface{}) {
	s.table(table).Set(key, v, cache.NoExpiration)
}

func (s *Store) get(table, key string) (interface{}, bool) {
	return s.table(table).Get(key)
}

func (s *Store) remove(table, key string) {
	s.table(table).Delete(key)
}

// scan returns the table's values in no particular order.
func scan[T any](s *Store, table string) []T {
	items := s.table(table).Items()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := item.Object.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
