// Package validator validates structs with `validate` tags and reports
// failures as field-level ValidationErrors.
//
// Rules use the go-playground/validator syntax:
//
//	type CreateUser struct {
//	    Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
//	    Email    string `json:"email" validate:"required,email"`
//	}
//
// Field names in errors come from the json, form or query tag, in that order.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var validate = sync.OnceValue(func() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// ValidateStruct validates v. Rule failures are returned as ValidationErrors;
// any other error (e.g. v is not a struct) is returned as is.
func ValidateStruct(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, convert(fe))
	}
	return out
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "query"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func convert(fe playground.FieldError) ValidationError {
	field := fe.Field()
	values := map[string]any{"field": field}
	if p := fe.Param(); p != "" {
		values["param"] = p
	}

	return ValidationError{
		Field:             field,
		Message:           message(fe),
		TranslationKey:    "validation." + fe.Tag(),
		TranslationValues: values,
	}
}

func message(fe playground.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
