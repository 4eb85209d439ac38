package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
//
// Validation errors of the binding tags are returned with a message for
// every invalid field.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return validationError(validationErrors)
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindQuery binds the query string of the request to the struct passed
// in the interface.
func BindQuery(c *gin.Context, data any) error {
	if err := c.ShouldBindQuery(data); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %s", ErrInvalidQueryString, messages(validationErrors))
		}

		return ErrInvalidQueryString
	}

	return nil
}

// validationError joins the messages for all invalid fields.
func validationError(errs validator.ValidationErrors) error {
	return fmt.Errorf("%w: %s", ErrInvalidBody, messages(errs))
}

func messages(errs validator.ValidationErrors) string {
	texts := make([]string, 0, len(errs))
	for _, e := range errs {
		texts = append(texts, ValidationErrorToText(e))
	}

	return strings.Join(texts, ", ")
}

// ValidationErrorToText returns a human readable message for a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", e.Field(), e.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// UUIDFromString binds a string to a UUID
//
// This is needed because gin does not support form binding to uuid.UUID currently.
// Follow https://github.com/gin-gonic/gin/pull/3045 to see when this gets resolved.
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return u, nil
}
