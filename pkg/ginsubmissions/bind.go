package ginsubmissions

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// BindError reports a payload that could not be decoded. It is a client
// error, not a validation failure: no field could be derived.
type BindError struct {
	Err error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("ginsubmissions: decode payload: %v", e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Bind decodes the request body into payload, choosing the decoder from the
// Content-Type (JSON, form, multipart, ...). Payload types should leave
// required-ness and rules to their fields and carry no binding tags.
func Bind(c *gin.Context, payload any) error {
	if err := c.ShouldBind(payload); err != nil {
		return &BindError{Err: err}
	}
	return nil
}
