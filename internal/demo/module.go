package demo

import (
	"context"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/render/template/gotemplate"
	"github.com/goliatone/go-submissions/pkg/submission"
)

const openTimeout = 10 * time.Second

// Module provides the demo stores, templates and *Handler.
var Module = fx.Module("demo",
	fx.Provide(
		ProvideStores,
		ProvideEngine,
		ProvideTags,
		ProvideValidator,
		ProvideHandler,
	),
)

// ProvideStores opens the configured backends and closes them on stop.
func ProvideStores(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	stores, err := NewStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("stores ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("unique_backend", cfg.Unique.Backend),
	)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return stores.Close()
		},
	})
	return stores, nil
}

// ProvideEngine builds the pongo2 engine for pages and tags. Templates under
// cfg.Theme.Dir take precedence over the embedded ones.
func ProvideEngine(cfg *config.Config) (*gotemplate.Engine, error) {
	var opts []gotemplate.Option
	if cfg.Theme.Dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(cfg.Theme.Dir))
	}
	opts = append(opts,
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithFS(render.TemplatesFS()),
	)
	return gotemplate.New(opts...)
}

// ProvideTags builds the tag renderer, applying the configured theme.
func ProvideTags(cfg *config.Config, engine *gotemplate.Engine) (*render.Tags, error) {
	paths := render.DefaultTemplatePaths()
	if cfg.Theme.Name != "" {
		themes := render.Themes{
			cfg.Theme.Name: &theme.Manifest{
				Name:      cfg.Theme.Name,
				Templates: cfg.Theme.Templates,
			},
		}
		selected, err := paths.SelectTheme(themes, cfg.Theme.Name, cfg.Theme.Variant)
		if err != nil {
			return nil, err
		}
		paths = selected
	}
	return render.NewTags(engine, render.WithTemplatePaths(paths))
}

// ProvideValidator builds the submission validator.
func ProvideValidator(logger *zap.Logger, recorder submission.Recorder) *submission.Validator {
	return submission.New(
		submission.WithLogger(logger.Named("submission")),
		submission.WithRecorder(recorder),
	)
}

// ProvideHandler builds the demo handler.
func ProvideHandler(stores *Stores, validator *submission.Validator, tags *render.Tags, engine *gotemplate.Engine, logger *zap.Logger) *Handler {
	return NewHandler(stores, validator, tags, engine, logger.Named("demo"))
}
