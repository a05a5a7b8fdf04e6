package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionKey identifies an option slot independently of where it is displayed.
type OptionKey string

const (
	KeyA OptionKey = "a"
	KeyB OptionKey = "b"
	KeyC OptionKey = "c"
	KeyD OptionKey = "d"
)

// CanonicalKeys lists the option slots in bank order.
var CanonicalKeys = []OptionKey{KeyA, KeyB, KeyC, KeyD}

type Option struct {
	Key  OptionKey
	Text string
}

// OptionSet is an ordered key→text mapping. The order is display order only.
type OptionSet []Option

// Text returns the text stored under key.
func (s OptionSet) Text(key OptionKey) (string, bool) {
	for _, o := range s {
		if o.Key == key {
			return o.Text, true
		}
	}
	return "", false
}

// Keys returns the keys in display order.
func (s OptionSet) Keys() []OptionKey {
	keys := make([]OptionKey, len(s))
	for i, o := range s {
		keys[i] = o.Key
	}
	return keys
}

// Clone returns a copy that does not share the backing array.
func (s OptionSet) Clone() OptionSet {
	if s == nil {
		return nil
	}
	out := make(OptionSet, len(s))
	copy(out, s)
	return out
}

// UnmarshalJSON decodes {"a": "...", "b": "..."} keeping the document order,
// which encoding/json does not do for maps.
func (s *OptionSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("options: expected object, got %v", tok)
	}

	var out OptionSet
	index := make(map[OptionKey]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := OptionKey(tok.(string))

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("options: key %q: %w", key, err)
		}

		// A repeated key overwrites in place so keys stay unique.
		if i, ok := index[key]; ok {
			out[i].Text = text
			continue
		}
		index[key] = len(out)
		out = append(out, Option{Key: key, Text: text})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalJSON writes the options as an object in display order.
func (s OptionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, o := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(string(o.Key))
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
