package finance

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression on the json encoding of s, as
// written by EncodeState.
func Query(s State, path string) (any, error) {
	blob, err := EncodeState(s)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(blob, &jobj); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return val, nil
}
