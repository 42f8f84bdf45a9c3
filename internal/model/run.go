package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// SearchRun is the write-once record of a single aggregation search.
// Sources are keyed by adapter name in phase execution order.
type SearchRun struct {
	SearchID     string               `json:"search_id"`
	Timestamp    time.Time            `json:"timestamp"`
	Query        Query                `json:"query"`
	Sources      *SourceMap           `json:"sources"`
	Consolidated *ConsolidatedProfile `json:"consolidated"`
	Status       string               `json:"status"`
}

// SourceMap is an insertion-ordered mapping from source name to its result.
// Plain Go maps lose insertion order on JSON round trips; the phase order is
// part of the SearchRun contract, so ordering is preserved explicitly.
type SourceMap struct {
	order []string
	items map[string]SourceResult
}

// NewSourceMap creates an empty ordered source map.
func NewSourceMap() *SourceMap {
	return &SourceMap{items: make(map[string]SourceResult)}
}

// Set stores a result under the given source name. Re-setting an existing
// name keeps its original position.
func (m *SourceMap) Set(name string, r SourceResult) {
	if m.items == nil {
		m.items = make(map[string]SourceResult)
	}
	if _, ok := m.items[name]; !ok {
		m.order = append(m.order, name)
	}
	m.items[name] = r
}

// Get returns the result stored under name.
func (m *SourceMap) Get(name string) (SourceResult, bool) {
	if m == nil || m.items == nil {
		return SourceResult{}, false
	}
	r, ok := m.items[name]
	return r, ok
}

// Len returns the number of stored results.
func (m *SourceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Names returns the source names in insertion order.
func (m *SourceMap) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *SourceMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.order) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, eris.Wrap(err, "model: marshal source name")
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.items[name])
		if err != nil {
			return nil, eris.Wrapf(err, "model: marshal source %q", name)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (m *SourceMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return eris.Wrap(err, "model: decode sources")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return eris.New("model: sources must be a JSON object")
	}

	m.order = nil
	m.items = make(map[string]SourceResult)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "model: decode source name")
		}
		name, ok := keyTok.(string)
		if !ok {
			return eris.New("model: source name must be a string")
		}

		var r SourceResult
		if err := dec.Decode(&r); err != nil {
			return eris.Wrapf(err, "model: decode source %q", name)
		}
		if r.Source == "" {
			r.Source = name
		}
		m.Set(name, r)
	}

	if _, err := dec.Token(); err != nil {
		return eris.Wrap(err, "model: decode sources close")
	}
	return nil
}
