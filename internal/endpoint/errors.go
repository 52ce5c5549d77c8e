package endpoint

import (
	"net/http"
	"strings"

	"insurecost/pkg/types"
)

// Error is the caller-facing failure returned by Handle. Cause is kept for
// server-side logging and is never serialized.
type Error struct {
	Kind    types.ErrorKind
	Message string
	Fields  []types.FieldError
	Cause   error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case types.KindValidation:
		return http.StatusUnprocessableEntity
	case types.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Response converts e into the wire payload.
func (e *Error) Response() types.ErrorResponse {
	return types.ErrorResponse{Error: e.Message, Code: e.StatusCode(), Kind: e.Kind, Fields: e.Fields}
}

const (
	msgInvalidInput = "invalid input"
	msgUnavailable  = "Model service is currently unavailable. Check model file path."
	msgInternal     = "Prediction failed due to internal error"
	maxCauseLen     = 200
)

func validationError(fields []types.FieldError) *Error {
	return &Error{Kind: types.KindValidation, Message: msgInvalidInput, Fields: fields}
}

func unavailableError(cause error) *Error {
	return &Error{Kind: types.KindUnavailable, Message: msgUnavailable, Cause: cause}
}

// internalError keeps only the first line of the cause, capped in length, in
// the caller-visible message.
func internalError(cause error) *Error {
	summary := cause.Error()
	if i := strings.IndexByte(summary, '\n'); i >= 0 {
		summary = summary[:i]
	}
	if r := []rune(summary); len(r) > maxCauseLen {
		summary = string(r[:maxCauseLen]) + "..."
	}
	return &Error{Kind: types.KindInternal, Message: msgInternal + ": " + summary, Cause: cause}
}
