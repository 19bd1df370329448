package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP boundary can map it
// to a status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindInsufficientQuestions
	KindAnswerMismatch
	KindConfigurationMissing
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Insufficient names the topic and the shortfall that prevented assembly.
func Insufficient(topicName string, want, got int) *Error {
	return &Error{
		Kind:    KindInsufficientQuestions,
		Message: fmt.Sprintf("insufficient questions for topic %s: needed %d, found %d", topicName, want, got),
	}
}

// InsufficientPool reports a shortfall in the combined pool of all
// requested topics, where no single topic is to blame.
func InsufficientPool(want, got int) *Error {
	return &Error{
		Kind:    KindInsufficientQuestions,
		Message: fmt.Sprintf("insufficient questions across the requested topics: needed %d more, found %d", want, got),
	}
}

func AnswerMismatch(format string, args ...any) *Error {
	return &Error{Kind: KindAnswerMismatch, Message: fmt.Sprintf(format, args...)}
}

func ConfigMissing(format string, args ...any) *Error {
	return &Error{Kind: KindConfigurationMissing, Message: fmt.Sprintf(format, args...)}
}

func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: op + " failed", Err: err}
}

// HTTPStatus maps an error to the status code the boundary should return.
// Unknown errors are treated as server faults.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation, KindAnswerMismatch, KindInsufficientQuestions:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConfigurationMissing, KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
