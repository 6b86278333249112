package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/internal/demo"
)

func TestRouter_ServesDemoAndMetrics(t *testing.T) {
	var router *gin.Engine
	app := fxtest.New(t,
		fx.Supply(config.Default(), zap.NewNop()),
		fx.Provide(provideRegistry, provideRecorder, newRouter),
		demo.Module,
		fx.Populate(&router),
	)
	app.RequireStart()
	defer app.RequireStop()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"title":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `submissions_validation_passes_total{context="create",outcome="invalid"} 1`)
	assert.Contains(t, body, `submissions_field_failures_total{key="title"} 1`)
}
