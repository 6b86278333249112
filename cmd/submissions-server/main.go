// Command submissions-server runs the todo demo: a JSON API under /api,
// server-rendered forms under /todos and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/internal/demo"
	"github.com/goliatone/go-submissions/internal/logger"
	"github.com/goliatone/go-submissions/pkg/metrics"
	"github.com/goliatone/go-submissions/pkg/submission"
)

type configPath string

func main() {
	path := flag.String("config", os.Getenv("SUBMISSIONS_CONFIG"), "path to a YAML config file")
	flag.Parse()

	fx.New(
		fx.Supply(configPath(*path)),
		fx.Provide(provideConfig),
		logger.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(
			provideRegistry,
			provideRecorder,
			newRouter,
		),
		demo.Module,
		fx.Invoke(startServer),
	).Run()
}

func provideConfig(path configPath) (*config.Config, error) {
	return config.Load(string(path))
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideRecorder(reg *prometheus.Registry) submission.Recorder {
	return metrics.NewRecorder(reg)
}

func newRouter(cfg *config.Config, log *zap.Logger, reg *prometheus.Registry, handler *demo.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/todos")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET(cfg.Server.MetricsPath, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handler.Register(router)
	return router
}

func startServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
