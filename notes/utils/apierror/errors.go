package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is an error that knows its HTTP status and can be serialized
// as the response body.
type ErrorResponse interface {
	error
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Error() string {
	return a.Message
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError carries per-field problems. It is the validation failure
// returned for bad request bodies and query parameters.
type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Error() string {
	fields := make([]string, 0, len(s.Errors))
	for field := range s.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(s.Errors[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// Empty reports whether no problem was recorded.
func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

var (
	MalformedJSONError  = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	MissingBodyError    = NewSimple(http.StatusBadRequest, "Request body is required")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
)

func NewNoteNotFoundError(id int64) *APIError {
	return NewSimple(http.StatusNotFound, "Note with id %d not found", id)
}

func NewInvalidParamTypeError(param, kind string) *StructuredError {
	s := NewStructured(http.StatusBadRequest)
	s.Add(param, "Value must be "+kind)
	return s
}

// IsNotFound reports whether err resolves to a 404 response.
func IsNotFound(err error) bool {
	var resp ErrorResponse
	return errors.As(err, &resp) && resp.Code() == http.StatusNotFound
}

// From resolves err to the response sent to the client. Errors that carry no
// status become a bare 500 so driver details never reach the caller.
func From(err error) ErrorResponse {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}
	return InternalServerError
}

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	s := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			s.Add(field, "This field is required")
		case "max":
			s.Add(field, "Value is too long, max: "+fe.Param())
		case "min":
			s.Add(field, "Value is too short, min: "+fe.Param())
		case "gte":
			s.Add(field, "Value must be greater than or equal to "+fe.Param())
		default:
			s.Add(field, "Invalid value provided")
		}
	}
	return s
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}
