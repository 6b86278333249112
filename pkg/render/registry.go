package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Shape selects which view data a tag kind renders with.
type Shape int

const (
	ShapeInput Shape = iota
	ShapeFile
	ShapeSelect
)

// Kind describes a tag: its name as used from templates, the template it
// renders by default and the view data it receives.
type Kind struct {
	Name     string
	Template string
	Shape    Shape
	// InputType is passed to input templates as "type". Defaults to Name.
	InputType string
}

// Built-in tag names.
const (
	TagCheckbox = "checkbox"
	TagEmail    = "email"
	TagFile     = "file"
	TagHidden   = "hidden"
	TagPassword = "password"
	TagText     = "text"
	TagTextarea = "textarea"
	TagSelect   = "select"
)

// Registry stores tag kinds by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// DefaultRegistry returns a registry holding the built-in tags.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{TagCheckbox, TagEmail, TagHidden, TagPassword, TagText, TagTextarea} {
		r.MustRegister(Kind{Name: name, Shape: ShapeInput})
	}
	r.MustRegister(Kind{Name: TagFile, Shape: ShapeFile})
	r.MustRegister(Kind{Name: TagSelect, Shape: ShapeSelect})
	return r
}

// Register adds a kind by name. Duplicate names return an error. An empty
// Template defaults to "fields/<name>-input".
func (r *Registry) Register(kind Kind) error {
	name := strings.TrimSpace(kind.Name)
	if name == "" {
		return fmt.Errorf("render: tag name is required")
	}
	kind.Name = name
	if strings.TrimSpace(kind.Template) == "" {
		kind.Template = defaultTemplatePath(name)
	}
	if kind.InputType == "" {
		kind.InputType = name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[name]; exists {
		return fmt.Errorf("render: tag %q already registered", name)
	}

	r.kinds[name] = kind
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind Kind) {
	if err := r.Register(kind); err != nil {
		panic(err)
	}
}

// Get retrieves a kind by name.
func (r *Registry) Get(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, ok := r.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("render: tag %q not found", name)
	}
	return kind, nil
}

// List returns a sorted list of tag names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a tag is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.kinds[name]
	return ok
}

func defaultTemplatePath(name string) string {
	return "fields/" + name + "-input"
}
