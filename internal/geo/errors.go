package geo

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates why a location lookup failed. Callers treat every kind
// the same way; the kind exists so logs, metrics and tests can tell them apart.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNetworkFailure means the request could not complete.
	KindNetworkFailure
	// KindMalformedResponse means the body was not the expected JSON shape.
	KindMalformedResponse
	// KindUpstreamError means the API answered with an explicit error payload.
	KindUpstreamError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

type LoadError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func networkFailure(message string, err error) *LoadError {
	return &LoadError{Kind: KindNetworkFailure, Message: message, Err: err}
}

func malformedResponse(message string, err error) *LoadError {
	return &LoadError{Kind: KindMalformedResponse, Message: message, Err: err}
}

func upstreamError(detail string) *LoadError {
	return &LoadError{Kind: KindUpstreamError, Message: "API Error: " + detail}
}

// KindOf reports the kind of a lookup error, KindUnknown when err is not a
// *LoadError.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUnknown
}
