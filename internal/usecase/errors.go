package usecase

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorDateParse        ErrorKind = "DATE_PARSE_FAILURE"
	ErrorAttachmentFetch  ErrorKind = "ATTACHMENT_FETCH_FAILURE"
	ErrorUnsupportedMedia ErrorKind = "UNSUPPORTED_MEDIA_TYPE"
	ErrorAIService        ErrorKind = "AI_SERVICE_FAILURE"
	ErrorEmptyAIResponse  ErrorKind = "EMPTY_AI_RESPONSE"
	ErrorStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
)

type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
