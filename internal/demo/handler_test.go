package demo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/internal/config"
	"github.com/goliatone/go-submissions/internal/demo"
	"github.com/goliatone/go-submissions/pkg/submission"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	stores, err := demo.NewStores(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	engine, err := demo.ProvideEngine(cfg)
	require.NoError(t, err)
	tags, err := demo.ProvideTags(cfg, engine)
	require.NoError(t, err)

	router := gin.New()
	demo.NewHandler(stores, submission.New(), tags, engine, zap.NewNop()).Register(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, router http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestTodoAPI_Lifecycle(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/todos", `{"title":"Write the docs"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[demo.Todo](t, rec)
	assert.Equal(t, "Write the docs", created.Title)

	path := "/api/todos/" + created.ID.String()
	rec = doJSON(t, router, http.MethodPatch, path, `{"done":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[demo.Todo](t, rec)
	assert.Equal(t, "Write the docs", updated.Title)
	assert.True(t, updated.Done)

	rec = doJSON(t, router, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]demo.Todo](t, rec), 1)

	rec = doJSON(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":true,"reason":"Not found"}`, rec.Body.String())
}

func TestTodoAPI_ValidationErrors(t *testing.T) {
	router := newServer(t)

	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "short title",
			body: `{"title":"abc"}`,
			want: map[string][]string{"title": {"is less than required minimum of 5 characters"}},
		},
		{
			name: "missing title",
			body: `{"done":false}`,
			want: map[string][]string{"title": {"is absent"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/todos", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			body := decode[submission.Response](t, rec)
			assert.True(t, body.Error)
			assert.Equal(t, submission.ValidationReason, body.Reason)
			assert.Equal(t, tt.want, body.ValidationErrors)
		})
	}
}

func TestTodoAPI_UpdateRejectsShortTitle(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/todos", `{"title":"Write the docs"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[demo.Todo](t, rec)

	rec = doJSON(t, router, http.MethodPatch, "/api/todos/"+created.ID.String(), `{"title":"no"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[submission.Response](t, rec)
	assert.Equal(t, map[string][]string{"title": {"is less than required minimum of 5 characters"}}, body.ValidationErrors)
}

func TestTodoAPI_BadRequests(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/todos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/todos/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/todos/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserAPI_UniqueUsername(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", `{"name":"Ada","username":"ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ada := decode[demo.User](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/users", `{"name":"Ada Two","username":"ada","email":"ada2@example.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[submission.Response](t, rec)
	assert.Equal(t, map[string][]string{"username": {"must be unique"}}, body.ValidationErrors)

	rec = doJSON(t, router, http.MethodPatch, "/api/users/"+ada.ID.String(), `{"name":"Ada Lovelace","username":"ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada Lovelace", decode[demo.User](t, rec).Name)

	rec = doJSON(t, router, http.MethodPatch, "/api/users/"+ada.ID.String(), `{"name":"Ada","username":"lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/users", `{"name":"Ada Two","username":"ada","email":"ada2@example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "renamed username should be released")

	rec = doJSON(t, router, http.MethodDelete, "/api/users/"+ada.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/users", `{"name":"Ada Three","username":"lovelace","email":"ada3@example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "deleted username should be released")
}

func TestTodoPages_CreateFlow(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodGet, "/todos/create", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, `<form action="/todos/create" method="POST" novalidate>`)
	assert.Contains(t, page, `<span class="required">*</span>`)
	assert.Contains(t, page, `placeholder="What needs doing?"`)
	assert.Contains(t, page, `At least <em>5</em> characters.`)
	assert.NotContains(t, page, "submissions-errors")

	rec = doForm(t, router, "/todos/create", url.Values{"title": {"abc"}, "done": {"false"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page = rec.Body.String()
	assert.Contains(t, page, `value="abc"`)
	assert.Contains(t, page, `id="title-errors"`)
	assert.Contains(t, page, "is less than required minimum of 5 characters")
	assert.Contains(t, page, submission.ValidationReason)

	rec = doForm(t, router, "/todos/create", url.Values{"title": {"Write the docs"}, "done": {"false", "true"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/todos", rec.Header().Get("Location"))

	rec = doJSON(t, router, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="done"`)
	assert.Contains(t, rec.Body.String(), "Write the docs")
}

func TestTodoPages_EditFlow(t *testing.T) {
	router := newServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/todos", `{"title":"Write the docs"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[demo.Todo](t, rec)
	editPath := "/todos/" + created.ID.String() + "/edit"

	rec = doJSON(t, router, http.MethodGet, editPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Write the docs"`)
	assert.NotContains(t, rec.Body.String(), " checked")

	rec = doForm(t, router, editPath, url.Values{"title": {"no"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="no"`)
	assert.Contains(t, rec.Body.String(), "is less than required minimum of 5 characters")

	rec = doForm(t, router, editPath, url.Values{"title": {"Write better docs"}, "done": {"false", "true"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/todos/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[demo.Todo](t, rec)
	assert.Equal(t, "Write better docs", updated.Title)
	assert.True(t, updated.Done)

	rec = doJSON(t, router, http.MethodGet, "/todos/"+created.ID.String()+"x/edit", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
