package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wI2L/jsondiff"
)

// Changes describes what the step into state i did, as JSON Patch operations on the
// serialized states, e.g. "replace /pc 7".
func (t *Trace) Changes(i int) ([]string, error) {
	after, ok := t.At(i)
	if !ok || i == 0 {
		return nil, fmt.Errorf("no step leads to state %d", i)
	}
	before, _ := t.At(i - 1)
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, op := range patch {
		line := op.Type + " " + string(op.Path)
		if op.Type != jsondiff.OperationRemove {
			val, err := json.Marshal(op.Value)
			if err != nil {
				return nil, err
			}
			line = line + " " + string(val)
		}
		result = append(result, line)
	}
	return result, nil
}

type dumpedState struct {
	Step  int `json:"step"`
	State any `json:"state"`
}

// WriteJSON writes the whole history, oldest first.
func (t *Trace) WriteJSON(w io.Writer) error {
	dump := make([]dumpedState, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		st, _ := t.At(i)
		dump = append(dump, dumpedState{Step: i, State: st})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}
