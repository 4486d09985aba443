package storage

import (
	"github.com/pkg/errors"
)

// Collection is a keyed set of records of one type. Records are stored by the
// canonical key of their "id" field and kept in insertion order.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	name    string
	keys    []string
	records map[string]Record
}

// NewCollection creates a collection and loads the given records into it.
func NewCollection(name string, records ...Record) (c *Collection, err error) {
	c = &Collection{
		name:    name,
		records: make(map[string]Record),
	}
	if err = c.Upsert(records...); err != nil {
		c = nil
	}
	return
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Len() int {
	return len(c.keys)
}

// Find returns the first record, in storage order, for which pred returns true.
func (c *Collection) Find(pred func(Record) bool) (Record, bool) {
	for _, k := range c.keys {
		var r = c.records[k]
		if pred(r) {
			return r.Copy(), true
		}
	}
	return nil, false
}

// FindAll returns every record for which pred returns true.
func (c *Collection) FindAll(pred func(Record) bool) (result []Record) {
	for _, k := range c.keys {
		var r = c.records[k]
		if pred(r) {
			result = append(result, r.Copy())
		}
	}
	return
}

// Upsert inserts records whose id is new and merges records whose id is already
// stored: fields of the incoming record overwrite, fields it does not carry are kept.
// The merge is shallow. Records are applied in order; on error the records before
// the failing one stay applied.
func (c *Collection) Upsert(records ...Record) (err error) {
	for i, record := range records {
		var id, ok = record.ID()
		if !ok {
			return errors.Wrapf(ErrMissingID, "%s: record %d", c.name, i)
		}
		var key string
		if key, err = Key(id); err != nil {
			return errors.Wrapf(err, "%s: record %d", c.name, i)
		}
		var existing Record
		if existing, ok = c.records[key]; ok {
			for k, v := range record {
				existing[k] = v
			}
			continue
		}
		c.records[key] = record.Copy()
		c.keys = append(c.keys, key)
	}
	return
}

// Dump returns a snapshot of all records in insertion order.
func (c *Collection) Dump() (result []Record) {
	result = make([]Record, 0, len(c.keys))
	for _, k := range c.keys {
		result = append(result, c.records[k].Copy())
	}
	return
}
