package storage

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

const idField = "id"

var (
	// ErrMissingID is returned when a record without an "id" key is upserted.
	ErrMissingID = errors.New("record has no id")
	// ErrUnknownCollection is returned when a collection name is not registered in the storage.
	ErrUnknownCollection = errors.New("unknown collection")
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Record is a plain keyed record as stored and exported by a Collection.
type Record map[string]any

// Recorder is implemented by typed records that can be flattened into a Record.
type Recorder interface {
	Record() Record
}

// Records flattens typed records for Collection.Upsert.
func Records[T Recorder](items []T) (result []Record) {
	result = make([]Record, 0, len(items))
	for _, item := range items {
		result = append(result, item.Record())
	}
	return
}

// ID returns the record identifier.
func (r Record) ID() (id any, ok bool) {
	id, ok = r[idField]
	return
}

// Copy returns a shallow copy of the record.
func (r Record) Copy() Record {
	var c = make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Key returns the canonical key for an identifier. Numeric ids of any Go type and
// composite ids such as [team_id, user_id] map to their JSON text, so an id read back
// from an export matches the id that was originally written.
func Key(id any) (key string, err error) {
	if id == nil {
		err = ErrMissingID
		return
	}
	var data []byte
	if data, err = json.Marshal(id); err != nil {
		return
	}
	key = string(data)
	return
}

// SameValue reports whether two field values have the same canonical encoding.
func SameValue(a, b any) bool {
	var ka, er1 = Key(a)
	var kb, er2 = Key(b)
	return er1 == nil && er2 == nil && ka == kb
}
