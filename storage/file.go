package storage

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Open creates a storage backed by a JSON export at path. Records found in an
// existing export are loaded into their collections; a missing file yields empty
// collections. Collections present in the file but not in names are loaded too.
func Open(fs afero.Fs, path string, names ...string) (s *Storage, err error) {
	s = New(names...)
	s.fs = fs
	s.path = path

	var exists bool
	if exists, err = afero.Exists(fs, path); err != nil {
		return nil, errors.Wrapf(err, "stat storage %s", path)
	}
	if !exists {
		return
	}

	var data []byte
	if data, err = afero.ReadFile(fs, path); err != nil {
		return nil, errors.Wrapf(err, "read storage %s", path)
	}
	var dump map[string][]Record
	if err = json.Unmarshal(data, &dump); err != nil {
		return nil, errors.Wrapf(err, "parse storage %s", path)
	}
	var loaded = make([]string, 0, len(dump))
	for name := range dump {
		loaded = append(loaded, name)
	}
	sort.Strings(loaded)
	for _, name := range loaded {
		var records = dump[name]
		var c, ok = s.collections[name]
		if !ok {
			s.names = append(s.names, name)
			c = &Collection{name: name, records: make(map[string]Record)}
			s.collections[name] = c
		}
		if err = c.Upsert(records...); err != nil {
			return nil, errors.Wrapf(err, "load storage %s", path)
		}
	}
	return
}

// Path returns the export path, or "" for an in-memory storage.
func (s *Storage) Path() string {
	return s.path
}

// Save writes the export of all collections to the storage path.
func (s *Storage) Save() (err error) {
	if s.fs == nil {
		return errors.New("storage is not backed by a file")
	}
	var data []byte
	if data, err = json.MarshalIndent(s.Dump(), "", "  "); err != nil {
		return
	}
	if err = s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrapf(err, "create storage directory for %s", s.path)
	}
	if err = afero.WriteFile(s.fs, s.path, data, os.FileMode(0o644)); err != nil {
		return errors.Wrapf(err, "write storage %s", s.path)
	}
	return
}
