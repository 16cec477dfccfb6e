package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/sugar/pkg/binder"
	"github.com/dmitrymomot/sugar/pkg/lifecycle"
	"github.com/dmitrymomot/sugar/pkg/validator"
)

// HTTPError is an error with everything needed to render it as a response.
// It implements either.Encoder and writes a JSON body:
//
//	{"error": {"code": 422, "message": "validation failed", "fields": {...}}}
type HTTPError struct {
	// Err is the underlying error. It is logged, never rendered.
	Err error `json:"-"`

	Message   string              `json:"message"`
	Detail    string              `json:"detail,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
	Fields    map[string][]string `json:"fields,omitempty"`
	Code      int                 `json:"code"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// Encode writes the error as JSON.
func (e *HTTPError) Encode(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, e.Code, struct {
		Error *HTTPError `json:"error"`
	}{Error: e})
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func WithFields(fields map[string][]string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Fields = fields
	}
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// FromError maps err to an HTTPError. An *HTTPError anywhere in the chain
// is returned as is. Lifecycle errors map as follows:
//
//   - authentication failure: 401
//   - decoding failure: 422 for validation errors, 413/415 for body limits
//     and media types, 400 otherwise
//   - construction failures: 422
//   - hook failures carrying validator.ValidationErrors: 422
//   - cancelled request: 408, expired deadline: 504
//
// Anything else, including hook failures with a plain error, becomes a 500
// with a generic message. Returns nil for nil.
func FromError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewHTTPError(http.StatusRequestTimeout, "request canceled", WithErrorCode("canceled"), WithError(err))
	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusGatewayTimeout, "request timed out", WithErrorCode("timeout"), WithError(err))
	case lifecycle.IsAuthenticationError(err):
		return ErrUnauthorized("invalid credentials", WithErrorCode("invalid_credentials"), WithError(err))
	case lifecycle.IsDecodingError(err):
		return fromDecodingError(err)
	case lifecycle.IsConstructionError(err):
		ce, _ := lifecycle.AsConstructionError(err)
		return ErrUnprocessable("unprocessable entity",
			WithErrorCode("construction_failed"),
			WithDetail(ce.Err.Error()),
			WithError(err),
		)
	case lifecycle.IsHookError(err):
		if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
			return ErrUnprocessable("request rejected",
				WithErrorCode("hook_failed"),
				WithFields(validationFields(ve)),
				WithError(err),
			)
		}
	}

	return ErrInternal("internal server error", WithError(err))
}

func fromDecodingError(err error) *HTTPError {
	if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
		return ErrUnprocessable("validation failed",
			WithErrorCode("validation_failed"),
			WithFields(validationFields(ve)),
			WithError(err),
		)
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return NewHTTPError(http.StatusUnsupportedMediaType, "unsupported media type", WithErrorCode("unsupported_media_type"), WithError(err))
	case errors.Is(err, binder.ErrBodyTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large", WithErrorCode("body_too_large"), WithError(err))
	}
	return ErrBadRequest("invalid request", WithErrorCode("invalid_request"), WithError(err))
}

func validationFields(ve validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	return fields
}
