package apierror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for clients.
type Kind string

const (
	KindBadRequest     Kind = "bad_request"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindDataAccess     Kind = "data_access"
	KindInternal       Kind = "internal"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindDataAccess:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Error is an error that carries a client-facing kind and message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an Error of the given kind wrapping err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func BadRequest(message string) *Error      { return New(KindBadRequest, message) }
func Unauthenticated(message string) *Error { return New(KindAuthentication, message) }
func Forbidden(message string) *Error       { return New(KindAuthorization, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }

// Response is the body of every error response.
type Response struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// Classifier maps domain errors that are not *Error to an *Error.
// It returns nil for errors it does not recognise.
type Classifier func(err error) *Error

// Translate converts any error into a client-safe *Error.
// Unknown errors become KindInternal with a generic message.
func Translate(err error, classifiers ...Classifier) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fromFiber(fe)
	}

	for _, classify := range classifiers {
		if e := classify(err); e != nil {
			return e
		}
	}

	return Wrap(KindInternal, "internal server error", err)
}

func fromFiber(fe *fiber.Error) *Error {
	switch {
	case fe.Code == fiber.StatusNotFound, fe.Code == fiber.StatusMethodNotAllowed:
		return Wrap(KindNotFound, fe.Message, fe)
	case fe.Code == fiber.StatusUnauthorized:
		return Wrap(KindAuthentication, fe.Message, fe)
	case fe.Code == fiber.StatusForbidden:
		return Wrap(KindAuthorization, fe.Message, fe)
	case fe.Code >= 400 && fe.Code < 500:
		return Wrap(KindBadRequest, fe.Message, fe)
	default:
		return Wrap(KindInternal, "internal server error", fe)
	}
}
