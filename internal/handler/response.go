package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	// CodeRateLimited is the error code sent with 429 responses
	CodeRateLimited = "RATE_LIMITED"

	// ContextRequestID is the gin context key holding the request id
	ContextRequestID = "request_id"
)

type Response struct {
	Status  string              `json:"status"`
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []errors.FieldError `json:"errors,omitempty"`
	Fields  []string            `json:"fields,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: statusSuccess,
		Data:   data,
	}
}

func NewErrorResponse(code, message string) *Response {
	return &Response{
		Status:  statusError,
		Code:    code,
		Message: message,
	}
}

// RespondWithSuccess writes data in the success envelope
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewSuccessResponse(data))
}

// RespondWithError renders err with the status of its kind. Causes of internal
// errors are logged and never sent to the client.
func RespondWithError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal(err)
	}

	if appErr.Kind == errors.KindInternal {
		logger := zerolog.Ctx(c.Request.Context())
		if logger.GetLevel() == zerolog.Disabled {
			l := log.With().Str("request_id", c.GetString(ContextRequestID)).Logger()
			logger = &l
		}
		logger.Error().
			Err(appErr.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, &Response{
		Status:  statusError,
		Code:    appErr.Kind.String(),
		Message: appErr.Message,
		Errors:  appErr.Fields,
		Fields:  appErr.Duplicates,
	})
}

// ParseID reads the :id path parameter
func ParseID(c *gin.Context) (uuid.UUID, error) {
	return parseUUID("id", c.Param("id"))
}

// QueryUUID reads an optional UUID query parameter; a missing parameter yields nil
func QueryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.InvalidInput(fmt.Sprintf("invalid %s", field), errors.FieldError{
			Field:   field,
			Message: "must be a valid UUID",
		})
	}
	return id, nil
}

// RespondRateLimited writes the 429 envelope
func RespondRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, NewErrorResponse(CodeRateLimited, "rate limit exceeded"))
}
