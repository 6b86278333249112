package demo

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/ginsubmissions"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/submission"
)

const htmlContentType = "text/html; charset=utf-8"

// TodoLayout places the TodoForm fields in a form.
var TodoLayout = []render.FormField{
	{
		Key: "title",
		Tag: render.TagText,
		Options: render.TagOptions{
			Placeholder: "What needs doing?",
			HelpText:    "At least <em>5</em> characters.",
		},
	},
	{Key: "done", Tag: render.TagCheckbox},
}

// UserLayout places the UserForm fields in a form.
var UserLayout = []render.FormField{
	{Key: "name", Tag: render.TagText},
	{Key: "username", Tag: render.TagText, Options: render.TagOptions{HelpText: "Letters and numbers only."}},
	{Key: "email", Tag: render.TagEmail, Options: render.TagOptions{Placeholder: "you@example.com"}},
	{Key: "bio", Tag: render.TagTextarea},
}

func (h *Handler) renderTodos(c *gin.Context) {
	todos, err := h.stores.Todos.List(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.page(c, http.StatusOK, "todos/index", map[string]any{"todos": todos})
}

func (h *Handler) renderCreateTodo(c *gin.Context) {
	cache := ginsubmissions.Cache(c)
	submission.BlankFields[Todo](h.validator, cache, (*TodoForm)(nil))
	h.todoPage(c, http.StatusOK, "New todo", "/todos/create", cache)
}

func (h *Handler) submitCreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	cache := ginsubmissions.Cache(c)
	form := todoFormFromPost(c)

	todo, err := submission.CreateValid[Todo](ctx, h.validator, cache, form)
	if err == nil {
		err = h.stores.Todos.Create(ctx, &todo)
	}
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/todos")
	case errors.Is(err, field.ErrInvalid):
		h.todoPage(c, http.StatusUnprocessableEntity, "New todo", "/todos/create", cache)
	default:
		h.pageError(c, err)
	}
}

func (h *Handler) renderEditTodo(c *gin.Context) {
	existing, ok := h.findPage(c)
	if !ok {
		return
	}
	cache := ginsubmissions.Cache(c)
	submission.PopulateFrom[Todo](h.validator, cache, (*TodoForm)(nil), existing)
	h.todoPage(c, http.StatusOK, "Edit todo", editPath(existing), cache)
}

func (h *Handler) submitEditTodo(c *gin.Context) {
	existing, ok := h.findPage(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cache := ginsubmissions.Cache(c)
	form := todoFormFromPost(c)

	todo, err := submission.UpdateValid[Todo](ctx, h.validator, cache, form, existing)
	if err == nil {
		err = h.stores.Todos.Update(ctx, &todo)
	}
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/todos")
	case errors.Is(err, field.ErrInvalid):
		h.todoPage(c, http.StatusUnprocessableEntity, "Edit todo", editPath(existing), cache)
	default:
		h.pageError(c, err)
	}
}

func (h *Handler) findPage(c *gin.Context) (*Todo, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, NotFoundReason)
		return nil, false
	}
	todo, err := h.stores.Todos.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.String(http.StatusNotFound, NotFoundReason)
		return nil, false
	case err != nil:
		h.pageError(c, err)
		return nil, false
	}
	return todo, true
}

func (h *Handler) todoPage(c *gin.Context, status int, heading, action string, cache *field.Cache) {
	var formErrors []string
	if status == http.StatusUnprocessableEntity {
		formErrors = []string{submission.ValidationReason}
	}
	form := render.Form{
		Action: action,
		Method: http.MethodPost,
		Fields: TodoLayout,
		Errors: formErrors,
	}

	html, err := h.forms.Render(c.Request.Context(), form, cache)
	if err != nil {
		h.pageError(c, err)
		return
	}
	h.page(c, status, "todos/edit", map[string]any{
		"heading": heading,
		"form":    string(html),
	})
}

func (h *Handler) page(c *gin.Context, status int, name string, data map[string]any) {
	out, err := h.pages.RenderTemplate(name, data)
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.Data(status, htmlContentType, []byte(out))
}

func (h *Handler) pageError(c *gin.Context, err error) {
	h.logger.Error("page failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, ginsubmissions.InternalErrorReason)
}

// todoFormFromPost reads the urlencoded todo form. The checkbox tag posts a
// hidden "false" followed by "true" when checked, so the last value wins.
func todoFormFromPost(c *gin.Context) *TodoForm {
	var form TodoForm
	if title, ok := c.GetPostForm("title"); ok {
		form.Title = &title
	}
	if values := c.PostFormArray("done"); len(values) > 0 {
		done := strings.EqualFold(values[len(values)-1], "true")
		form.Done = &done
	}
	return &form
}

func editPath(todo *Todo) string {
	return "/todos/" + todo.ID.String() + "/edit"
}
