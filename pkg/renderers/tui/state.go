package tui

import (
	"fmt"
	"sort"
	"strings"
)

// State tracks the values entered so far, keyed by field key. Dotted keys
// such as "address.city" nest when the state is serialized.
type State struct {
	values map[string]string
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]string) *State {
	values := make(map[string]string, len(prefill))
	for key, value := range prefill {
		values[key] = value
	}
	return &State{values: values}
}

// Get returns the value entered for key.
func (s *State) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[key]
	return value, ok
}

// Set records the value entered for key.
func (s *State) Set(key, value string) {
	s.values[key] = value
}

// Values returns a copy of the flat key/value map.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Keys returns the keys with values, sorted.
func (s *State) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Nested expands dotted keys into nested maps.
func (s *State) Nested() (map[string]any, error) {
	root := make(map[string]any, len(s.values))
	for _, key := range s.Keys() {
		if err := setPath(root, key, s.values[key]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func setPath(root map[string]any, path, value string) error {
	segments := strings.Split(path, ".")
	node := root
	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("tui: empty segment in key %q", path)
		}
		if i == len(segments)-1 {
			if _, exists := node[segment]; exists {
				return fmt.Errorf("tui: key %q is both a value and a group", path)
			}
			node[segment] = value
			return nil
		}
		switch child := node[segment].(type) {
		case nil:
			next := make(map[string]any)
			node[segment] = next
			node = next
		case map[string]any:
			node = child
		default:
			return fmt.Errorf("tui: key %q is both a value and a group", path)
		}
	}
	return nil
}
