package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the machine-readable category of a backend failure. Handlers branch on
// Kind instead of inspecting status codes or message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotRegistered
	KindDuplicateCheckIn
	KindValidationFailed
	KindAlreadyRegistered
	KindNotFound
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotRegistered:
		return "not_registered"
	case KindDuplicateCheckIn:
		return "duplicate_checkin"
	case KindValidationFailed:
		return "validation_failed"
	case KindAlreadyRegistered:
		return "already_registered"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every Client method.
type Error struct {
	Message    string
	StatusCode int
	Endpoint   string
	Kind       Kind
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d, endpoint %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of an *Error anywhere in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

var codeKinds = map[string]Kind{
	"NOT_REGISTERED":     KindNotRegistered,
	"DUPLICATE_CHECKIN":  KindDuplicateCheckIn,
	"VALIDATION_FAILED":  KindValidationFailed,
	"ALREADY_REGISTERED": KindAlreadyRegistered,
	"NOT_FOUND":          KindNotFound,
}

var notRegisteredPhrases = []string{"not registered", "user not found", "user id is required"}

// Classify maps a backend failure onto a Kind. An explicit code from the
// envelope wins; otherwise the status and message text are inspected.
func Classify(status int, message, code string) Kind {
	if k, ok := codeKinds[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return k
	}

	msg := strings.ToLower(message)
	switch status {
	case http.StatusNotFound:
		if strings.Contains(msg, "schedule") {
			return KindNotFound
		}
		return KindNotRegistered
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		for _, phrase := range notRegisteredPhrases {
			if strings.Contains(msg, phrase) {
				return KindNotRegistered
			}
		}
		if strings.Contains(msg, "already checked in") {
			return KindDuplicateCheckIn
		}
		if strings.Contains(msg, "already registered") {
			return KindAlreadyRegistered
		}
		return KindValidationFailed
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return KindTimeout
	}
	return KindUnknown
}

func newError(endpoint string, status int, message, code string, cause error) *Error {
	return &Error{
		Message:    message,
		StatusCode: status,
		Endpoint:   endpoint,
		Kind:       Classify(status, message, code),
		Err:        cause,
	}
}
