package service

import "net/http"

type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindMisconfiguration      ErrorKind = "misconfiguration"
	KindUpstreamFailure       ErrorKind = "upstream_failure"
	KindEmptyUpstreamResponse ErrorKind = "empty_upstream_response"
)

// Client-facing messages.
const (
	msgNoText          = "No text provided"
	msgNoResponse      = "No response from language model"
	msgUpstreamFailure = "Language model request failed"
)

// Error is what the service returns for every failed turn. Message is safe
// to show to a client; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	if e.Kind == KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}
