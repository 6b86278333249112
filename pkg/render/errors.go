package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// ErrorMapping splits a foreign error payload (for example the 422 body of an
// upstream API) into messages for known field keys and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors joins form-level messages, dropping blanks and repeats.
func MergeFormErrors(existing []string, extras ...string) []string {
	return distinct(append(append([]string(nil), existing...), extras...))
}

// MapErrorPayload assigns each payload path to a field key in cache. Paths
// may be dotted, bracketed or slash separated; array indices are ignored and
// the longest run of segments naming a field wins, so "/data/address/city"
// reaches the "address.city" field. Paths naming no field become form-level
// messages.
func MapErrorPayload(cache *field.Cache, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	keys := make(map[string]struct{})
	if cache != nil {
		for _, key := range cache.Keys() {
			keys[key] = struct{}{}
		}
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		messages := distinct(payload[path])
		if len(messages) == 0 {
			continue
		}
		key, ok := fieldKeyFor(path, keys)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[key] = append(mapping.Fields[key], messages...)
	}
	mapping.Form = distinct(mapping.Form)
	return mapping
}

// Apply attaches the field messages to cache, after any errors already there,
// so tags render them inline.
func (m ErrorMapping) Apply(cache *field.Cache) {
	if cache == nil {
		return
	}
	for key, messages := range m.Fields {
		errs := make([]validation.Error, 0, len(messages))
		for _, message := range messages {
			errs = append(errs, validation.Error{Reason: message})
		}
		cache.SetErrors(key, field.Resolved(errs...))
	}
}

func fieldKeyFor(path string, keys map[string]struct{}) (string, bool) {
	if _, ok := keys[strings.TrimSpace(path)]; ok {
		return strings.TrimSpace(path), true
	}

	var segments []string
	for _, segment := range strings.FieldsFunc(path, isPathSeparator) {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		segments = append(segments, segment)
	}

	for start := range segments {
		for end := len(segments); end > start; end-- {
			candidate := strings.Join(segments[start:end], ".")
			if _, ok := keys[candidate]; ok {
				return candidate, true
			}
		}
	}
	return "", false
}

func isPathSeparator(r rune) bool {
	switch r {
	case '.', '/', '[', ']', '#', '$', ' ':
		return true
	}
	return false
}

func distinct(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, ok := seen[message]; ok {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}
