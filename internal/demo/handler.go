package demo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/pkg/ginsubmissions"
	"github.com/goliatone/go-submissions/pkg/render"
	"github.com/goliatone/go-submissions/pkg/render/template"
	"github.com/goliatone/go-submissions/pkg/submission"
)

// NotFoundReason is sent when the requested entity does not exist.
const NotFoundReason = "Not found"

// Handler serves the demo API under /api and the todo pages.
type Handler struct {
	stores    *Stores
	validator *submission.Validator
	forms     *render.HTMLRenderer
	pages     template.TemplateRenderer
	logger    *zap.Logger
}

// NewHandler creates a Handler. pages renders the page templates and must
// also be the renderer tags was built with.
func NewHandler(stores *Stores, validator *submission.Validator, tags *render.Tags, pages template.TemplateRenderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		stores:    stores,
		validator: validator,
		forms:     render.NewHTMLRenderer(tags, ""),
		pages:     pages,
		logger:    logger,
	}
}

// Register mounts every route on router.
func (h *Handler) Register(router gin.IRouter) {
	api := router.Group("/api", ginsubmissions.ErrorHandler(h.logger))
	{
		api.GET("/todos", h.listTodos)
		api.GET("/todos/:id", h.getTodo)
		api.POST("/todos", h.createTodo)
		api.PATCH("/todos/:id", h.updateTodo)
		api.DELETE("/todos/:id", h.deleteTodo)

		api.GET("/users", h.listUsers)
		api.POST("/users", h.createUser)
		api.PATCH("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)
	}

	router.GET("/todos", h.renderTodos)
	router.GET("/todos/create", h.renderCreateTodo)
	router.POST("/todos/create", h.submitCreateTodo)
	router.GET("/todos/:id/edit", h.renderEditTodo)
	router.POST("/todos/:id/edit", h.submitEditTodo)
}

func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.stores.Todos.List(c.Request.Context())
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *Handler) getTodo(c *gin.Context) {
	todo, ok := findJSON(c, h.stores.Todos)
	if ok {
		c.JSON(http.StatusOK, todo)
	}
}

func (h *Handler) createTodo(c *gin.Context) {
	var form TodoForm
	if err := ginsubmissions.Bind(c, &form); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	todo, err := submission.CreateValid[Todo](ctx, h.validator, ginsubmissions.Cache(c), &form)
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if err := h.stores.Todos.Create(ctx, &todo); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) updateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	existing, ok := findJSON(c, h.stores.Todos)
	if !ok {
		return
	}

	var form TodoForm
	if err := ginsubmissions.Bind(c, &form); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	todo, err := submission.UpdateValid[Todo](ctx, h.validator, ginsubmissions.Cache(c), &form, existing)
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if err := h.stores.Todos.Update(ctx, &todo); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	respondDeleted(c, h.stores.Todos.Delete(c.Request.Context(), id))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.stores.Users.List(c.Request.Context())
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) createUser(c *gin.Context) {
	form := UserForm{Usernames: h.stores.Usernames}
	if err := ginsubmissions.Bind(c, &form); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := submission.CreateValid[User](ctx, h.validator, ginsubmissions.Cache(c), &form)
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if err := h.stores.Users.Create(ctx, &user); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if err := h.stores.Usernames.Add(ctx, user.Username); err != nil {
		h.logger.Warn("username index out of sync", zap.String("username", user.Username), zap.Error(err))
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	ctx := c.Request.Context()
	existing, ok := findJSON(c, h.stores.Users)
	if !ok {
		return
	}

	form := UserForm{Usernames: h.stores.Usernames}
	if err := ginsubmissions.Bind(c, &form); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	user, err := submission.UpdateValid[User](ctx, h.validator, ginsubmissions.Cache(c), &form, existing)
	if err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if err := h.stores.Users.Update(ctx, &user); err != nil {
		ginsubmissions.Fail(c, err)
		return
	}
	if user.Username != existing.Username {
		h.syncUsername(c, existing.Username, user.Username)
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	user, ok := findJSON(c, h.stores.Users)
	if !ok {
		return
	}
	if err := h.stores.Users.Delete(c.Request.Context(), user.ID); err != nil {
		respondDeleted(c, err)
		return
	}
	h.syncUsername(c, user.Username, "")
	respondDeleted(c, nil)
}

func (h *Handler) syncUsername(c *gin.Context, released, taken string) {
	ctx := c.Request.Context()
	if released != "" {
		if err := h.stores.Usernames.Remove(ctx, released); err != nil {
			h.logger.Warn("username index out of sync", zap.String("username", released), zap.Error(err))
		}
	}
	if taken != "" {
		if err := h.stores.Usernames.Add(ctx, taken); err != nil {
			h.logger.Warn("username index out of sync", zap.String("username", taken), zap.Error(err))
		}
	}
}

// findJSON parses the :id parameter and loads the entity. Unknown or
// malformed IDs answer 404; other failures go to the error handler.
func findJSON[T entity](c *gin.Context, repo Repository[T]) (*T, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return nil, false
	}
	found, err := repo.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		notFound(c)
		return nil, false
	case err != nil:
		ginsubmissions.Fail(c, err)
		return nil, false
	}
	return found, true
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ginsubmissions.ErrorResponse{Error: true, Reason: NotFoundReason})
}

func respondDeleted(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrNotFound):
		notFound(c)
	default:
		ginsubmissions.Fail(c, err)
	}
}
