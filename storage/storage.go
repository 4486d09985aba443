// Package storage keeps the synced directory records in memory as keyed collections
// with merge-on-write semantics, and optionally persists them as a JSON export.
package storage

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Collection names used by the organization sync.
const (
	Orgs        = "orgs"
	Users       = "users"
	Teams       = "teams"
	Memberships = "memberships"
)

// DefaultCollections lists the collections a Storage is created with.
var DefaultCollections = []string{Orgs, Users, Teams, Memberships}

// Storage is the working set of collections for one sync. It is not safe for
// concurrent use; callers serialize access.
type Storage struct {
	names       []string
	collections map[string]*Collection

	fs   afero.Fs
	path string
}

// New creates an in-memory storage. Without names it registers DefaultCollections.
func New(names ...string) *Storage {
	if len(names) == 0 {
		names = DefaultCollections
	}
	var s = &Storage{
		collections: make(map[string]*Collection),
	}
	for _, name := range names {
		if _, ok := s.collections[name]; ok {
			continue
		}
		s.names = append(s.names, name)
		s.collections[name] = &Collection{name: name, records: make(map[string]Record)}
	}
	return s
}

// Collection returns the named collection.
func (s *Storage) Collection(name string) (*Collection, error) {
	if c, ok := s.collections[name]; ok {
		return c, nil
	}
	return nil, errors.Wrap(ErrUnknownCollection, name)
}

// Names returns the registered collection names in registration order.
func (s *Storage) Names() []string {
	return append([]string(nil), s.names...)
}

// Dump returns a snapshot of every collection keyed by name.
func (s *Storage) Dump() map[string][]Record {
	var result = make(map[string][]Record, len(s.names))
	for _, name := range s.names {
		result[name] = s.collections[name].Dump()
	}
	return result
}

// Transaction runs fn with access to all collections so a sync applies its
// upserts as one logical write.
//
// This is a grouping construct only. There is no isolation and no rollback: if fn
// fails part way, collections it already wrote to stay modified. When the storage is
// backed by a file, the file is written once after fn succeeds and left untouched
// when fn fails.
func (s *Storage) Transaction(fn func(tx *Tx) error) (err error) {
	if err = fn(&Tx{storage: s}); err != nil {
		return
	}
	if s.fs != nil {
		err = s.Save()
	}
	return
}

// Tx gives a transaction callback access to the storage collections.
type Tx struct {
	storage *Storage
}

func (tx *Tx) Collection(name string) (*Collection, error) {
	return tx.storage.Collection(name)
}

// Upsert is a shortcut for Collection(name).Upsert(records...).
func (tx *Tx) Upsert(name string, records ...Record) (err error) {
	var c *Collection
	if c, err = tx.storage.Collection(name); err != nil {
		return
	}
	return c.Upsert(records...)
}
