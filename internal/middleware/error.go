package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/logger"
)

// ErrorBody is the JSON envelope every failed request returns.
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

// ErrorPayload carries the machine-readable code and the client-safe message.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Resolve maps any error to the AppError that should reach the client.
// Internal causes are logged against the request; they never leave the server.
func Resolve(c *gin.Context, err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
		}
		return appErr
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
	)
	return apperrors.ErrInternalServer
}

// RespondError writes err as an ErrorBody with the matching status code.
func RespondError(c *gin.Context, err error) {
	appErr := Resolve(c, err)
	c.JSON(appErr.StatusCode, ErrorBody{Error: ErrorPayload{Code: appErr.Code, Message: appErr.Message}})
}

func abortWith(c *gin.Context, err error) {
	appErr := Resolve(c, err)
	c.AbortWithStatusJSON(appErr.StatusCode, ErrorBody{Error: ErrorPayload{Code: appErr.Code, Message: appErr.Message}})
}

// ErrorHandler renders the last error a handler pushed with c.Error, unless
// the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondError(c, c.Errors.Last().Err)
	}
}
