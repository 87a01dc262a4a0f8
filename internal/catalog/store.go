package catalog

import "sync/atomic"

// Store publishes the current catalog to readers. Replace swaps the
// whole lookup structure at once, so a reload never exposes a
// half-built catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Current returns the active catalog. Safe for unsynchronized
// concurrent use.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace atomically installs a fully built catalog.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
}

// ContainsAlias answers against the active catalog, so consumers that
// hold the store see alias changes after a reload.
func (s *Store) ContainsAlias(alias string) bool {
	return s.Current().ContainsAlias(alias)
}
