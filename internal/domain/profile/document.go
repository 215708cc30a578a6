package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is a profile JSON object keyed by top-level field.
type Document map[string]json.RawMessage

// ParseDocument decodes raw as a JSON object. Arrays, scalars and null are
// rejected since they cannot be shallow-merged.
func ParseDocument(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("profile document must be a JSON object")
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Merge overwrites top-level keys of d with those in partial. Keys missing
// from partial are left untouched; nothing is ever deleted.
func (d Document) Merge(partial Document) Document {
	out := make(Document, len(d)+len(partial))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

func (d Document) Marshal() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}
