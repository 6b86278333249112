package ginsubmissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-submissions/pkg/submission"
)

// InternalErrorReason is the reason sent for hard errors. Details are logged,
// never returned.
const InternalErrorReason = "Internal server error"

// ErrorResponse is the body sent for bind and hard errors.
type ErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// ErrorHandler converts the last error recorded on the gin context, after
// the handler chain ran, into a response. Validation failures are logged at
// info level outside release mode and at debug level in it.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if invalid, ok := submission.AsValidationError(err); ok {
			logValidation(logger, c, invalid)
			if !c.Writer.Written() {
				c.JSON(http.StatusUnprocessableEntity, invalid.Response())
			}
			return
		}

		var bindErr *BindError
		if errors.As(err, &bindErr) {
			logger.Debug("submission payload rejected",
				zap.String("path", c.FullPath()),
				zap.Error(bindErr.Err),
			)
			if !c.Writer.Written() {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Reason: "Invalid request payload"})
			}
			return
		}

		logger.Error("submission failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: true, Reason: InternalErrorReason})
		}
	}
}

func logValidation(logger *zap.Logger, c *gin.Context, invalid *submission.ValidationError) {
	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.Strings("fields", invalid.Keys()),
	}
	if gin.Mode() == gin.ReleaseMode {
		logger.Debug("submission invalid", fields...)
		return
	}
	logger.Info("submission invalid", append(fields, zap.Any("errors", invalid.Errors))...)
}

// Fail records err on c and aborts the chain so ErrorHandler responds.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
