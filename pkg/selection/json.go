package selection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the model as an object of industry -> niche list with keys
// in model order. encoding/json would sort map keys, so the object is built by
// hand.
func (m *Model) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, industry := range m.Industries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(industry)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Niches(industry))
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

// UnmarshalJSON reads an object of industry -> niche list keeping document key
// order. A null or non-list value is treated as an empty niche set; non-string
// list entries are skipped.
func (m *Model) UnmarshalJSON(data []byte) error {
	*m = Model{}
	m.init()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("selection: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		industry, ok := tok.(string)
		if !ok {
			return fmt.Errorf("selection: expected industry key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		m.Set(industry, nichesFromJSON(raw)...)
	}

	_, err = dec.Token()
	return err
}

func nichesFromJSON(raw json.RawMessage) []string {
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
