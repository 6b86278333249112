package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-submissions/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// Option configures the pongo2 engine before construction.
type Option func(*config)

type config struct {
	baseDir string
	sources []fs.FS
}

// WithBaseDir loads templates from a directory on disk. The directory is
// searched before any file system given with WithFS, so it can override
// individual field or page templates.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files. It can be given several times; earlier
// file systems win on name clashes.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.sources = append(cfg.sources, files)
		}
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine over the configured template sources.
func New(options ...Option) (*Engine, error) {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.baseDir == "" && len(cfg.sources) == 0 {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}
	if err := registerFilters(); err != nil {
		return nil, err
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	for _, files := range cfg.sources {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	return &Engine{set: pongo2.NewSet("submissions", loaders...)}, nil
}

// RenderTemplate renders the template at name, appending DefaultExtension
// when missing. Compiled templates are cached by the template set.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, DefaultExtension) {
		path += DefaultExtension
	}

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	view, err := viewContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data for %q: %w", path, err)
	}
	out, err := tmpl.Execute(view)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	return out, nil
}

// viewContext turns view data into a pongo2 context. Structs such as the tag
// view data are flattened through their JSON tags, so templates read
// isRequired and hasErrors the same way API clients do. Functions, such as
// the tag helpers from render.Tags.Funcs, are kept callable.
func viewContext(data any) (pongo2.Context, error) {
	var fields map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		fields = v
	case map[string]any:
		fields = v
	default:
		if err := roundTrip(v, &fields); err != nil {
			return nil, err
		}
	}

	view := make(pongo2.Context, len(fields))
	for key, value := range fields {
		converted, err := plain(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		view[key] = converted
	}
	return view, nil
}

func plain(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, float64:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			converted, err := plain(nested)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = converted
		}
		return out, nil
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}
	var out any
	if err := roundTrip(value, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

var (
	filtersOnce sync.Once
	filtersErr  error
)

// registerFilters installs the engine's filters. pongo2 keeps filters in a
// process-wide registry, so this runs once and every later New sees the same
// result.
func registerFilters() error {
	filtersOnce.Do(func() {
		filtersErr = registerFilter("reasons", filterReasons)
	})
	return filtersErr
}

func registerFilter(name string, fn pongo2.FilterFunction) error {
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q is already registered", name)
	}
	if err := pongo2.RegisterFilter(name, fn); err != nil {
		return fmt.Errorf("gotemplate: register filter %q: %w", name, err)
	}
	return nil
}

// filterReasons joins a field's error reasons with param, defaulting to ", ".
func filterReasons(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	sep := ", "
	if param != nil && param.IsString() && param.String() != "" {
		sep = param.String()
	}
	if in.IsString() || !in.CanSlice() {
		return pongo2.AsValue(strings.TrimSpace(in.String())), nil
	}
	parts := make([]string, 0, in.Len())
	in.Iterate(func(_, _ int, key, _ *pongo2.Value) bool {
		if text := strings.TrimSpace(key.String()); text != "" {
			parts = append(parts, text)
		}
		return true
	}, func() {})
	return pongo2.AsValue(strings.Join(parts, sep)), nil
}
