package finance

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObjectWriter builds a json object whose members keep the order they
// were appended in. The zero value is an empty object.
//
// The first marshaling error is kept and returned by MarshalJSON; later
// appends are ignored.
type jsonObjectWriter struct {
	members [][]byte
	err     error
}

// Append adds the member key with the json encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	w.members = append(w.members, append(append(k, ':'), v...))
	return w
}

func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	b.Write(bytes.Join(w.members, []byte{','}))
	b.WriteByte('}')
	return b.Bytes(), nil
}
