package model

import "sort"

// Record is an ordered, string-keyed bag of dynamically-typed values as
// reported by the external directory service. Keys may be absent, spelled
// inconsistently, or hold values of unexpected type; nothing about its
// schema is known at compile time. Records are ephemeral: one is produced
// per sync call and never persisted.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty Record
func NewRecord() *Record {
	return &Record{
		values: make(map[string]any),
	}
}

// RecordFrom builds a Record from a plain map. Key order of a Go map is
// not deterministic, so keys are sorted to make the result reproducible.
func RecordFrom(m map[string]any) *Record {
	r := NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set stores a value under key, preserving first-insertion order
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the raw value stored under key
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys
func (r *Record) Len() int {
	return len(r.keys)
}
