package handler

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// BindJSON decodes the request body into req. A body that does not fit req is
// InvalidInput naming the first field that failed to decode.
func BindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindBodyWith(req, binding.JSON)
	if err == nil {
		return nil
	}
	return errors.InvalidInput("invalid request body", decodeError(c, req, err))
}

func decodeError(c *gin.Context, req interface{}, err error) errors.FieldError {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return errors.FieldError{Field: "body", Message: typeMessage(reflect.TypeOf(req))}
		}
		return errors.FieldError{Field: typeErr.Field, Message: typeMessage(typeErr.Type)}
	}

	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.FieldError{Field: "body", Message: "must be valid JSON"}
	case stderrors.As(err, &sizeErr):
		return errors.FieldError{Field: "body", Message: "exceeds the allowed size"}
	case stderrors.Is(err, io.EOF):
		return errors.FieldError{Field: "body", Message: "is required"}
	}

	// Errors from UnmarshalText/UnmarshalJSON (uuid, decimal) carry no field,
	// so decode each member on its own to find the one that failed.
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := raw.([]byte); ok {
			if fe, found := locateField(body, reflect.TypeOf(req)); found {
				return fe
			}
		}
	}
	return errors.FieldError{Field: "body", Message: "could not be decoded"}
}

func locateField(body []byte, t reflect.Type) (errors.FieldError, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return errors.FieldError{}, false
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return errors.FieldError{}, false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		raw, ok := lookupMember(members, name)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, reflect.New(f.Type).Interface()); err != nil {
			return errors.FieldError{Field: name, Message: typeMessage(f.Type)}, true
		}
	}
	return errors.FieldError{}, false
}

// lookupMember matches keys case-insensitively, like encoding/json does
func lookupMember(members map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := members[name]; ok {
		return raw, true
	}
	for k, raw := range members {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case uuidType:
		return "must be a valid UUID"
	case decimalType:
		return "must be a number"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.Slice, reflect.Array:
		if t.Elem() == uuidType {
			return "must be a list of valid UUIDs"
		}
		return "must be a list"
	case reflect.Struct, reflect.Map:
		return "must be an object"
	}
	return "has an invalid type"
}
