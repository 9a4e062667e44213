package docsearch

import (
	"bytes"
	"encoding/json"
)

// Description is the HTML description of one outline path, relative to
// the page that owns its partition.
type Description struct {
	Path string
	HTML string
}

// Descriptions is the content of one description partition in document
// order. It decodes from and encodes to a flat JSON object.
type Descriptions []Description

// Get returns the description HTML stored for path.
func (d Descriptions) Get(path string) (string, bool) {
	for _, desc := range d {
		if desc.Path == path {
			return desc.HTML, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes a JSON object while keeping its key order.
// A repeated key keeps its first position and its last value.
func (d *Descriptions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return Errorf(EINVALID, "failed to decode descriptions: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Errorf(EINVALID, "descriptions must be a JSON object")
	}

	out := Descriptions{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Errorf(EINVALID, "failed to decode descriptions: %v", err)
		}
		key, _ := tok.(string)

		var html string
		if err := dec.Decode(&html); err != nil {
			return Errorf(EINVALID, "description %q: %v", key, err)
		}

		if i, ok := seen[key]; ok {
			out[i].HTML = html
			continue
		}
		seen[key] = len(out)
		out = append(out, Description{Path: key, HTML: html})
	}

	if _, err := dec.Token(); err != nil {
		return Errorf(EINVALID, "failed to decode descriptions: %v", err)
	}

	*d = out
	return nil
}

// MarshalJSON encodes the descriptions as a JSON object in document order.
func (d Descriptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, desc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(desc.Path)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(desc.HTML)
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
