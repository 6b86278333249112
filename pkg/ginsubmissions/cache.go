package ginsubmissions

import (
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/render"
)

// CacheKey stores the request's field cache on the gin context.
const CacheKey = "submissions.cache"

// Cache returns the field cache of the request, creating it on first use.
func Cache(c *gin.Context) *field.Cache {
	if value, ok := c.Get(CacheKey); ok {
		if cache, ok := value.(*field.Cache); ok && cache != nil {
			return cache
		}
	}
	cache := field.NewCache()
	c.Set(CacheKey, cache)
	return cache
}

// SetCache replaces the field cache of the request.
func SetCache(c *gin.Context, cache *field.Cache) {
	c.Set(CacheKey, cache)
}

// TagFuncs returns the tag template functions bound to the request's cache
// and context, ready to merge into page template data.
func TagFuncs(c *gin.Context, tags *render.Tags) map[string]any {
	return tags.Funcs(c.Request.Context(), Cache(c))
}
