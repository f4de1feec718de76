package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var errRecordNotObject = errors.New("form: record must be a JSON object")

// Entry is one key/value pair of a Record.
type Entry struct {
	Key   string
	Value string
}

// Record is an ordered mapping of field name to final value. Its JSON form is
// an object whose keys keep the insertion order.
type Record struct {
	entries []Entry
}

// NewRecord builds a record from entries; later duplicates replace earlier values.
func NewRecord(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r.Set(e.Key, e.Value)
	}
	return r
}

// Set stores a value, keeping the original position of an existing key.
func (r *Record) Set(key, value string) {
	for i := range r.entries {
		if r.entries[i].Key == key {
			r.entries[i].Value = value
			return
		}
	}
	r.entries = append(r.entries, Entry{Key: key, Value: value})
}

func (r Record) Get(key string) (string, bool) {
	for _, e := range r.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

func (r Record) Len() int {
	return len(r.entries)
}

func (r Record) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the pairs in order.
func (r Record) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.entries))
	for _, e := range r.entries {
		m[e.Key] = e.Value
	}
	return m
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object. String values are taken as-is; any other
// scalar keeps its JSON text.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errRecordNotObject
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errRecordNotObject
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := rawToString(raw)
		if err != nil {
			return fmt.Errorf("form: record key %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}

func rawToString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return "", nil
	case raw[0] == '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case raw[0] == '{' || raw[0] == '[':
		return "", errors.New("nested values are not supported")
	case bytes.Equal(raw, []byte("null")):
		return "", nil
	default:
		return string(raw), nil
	}
}
