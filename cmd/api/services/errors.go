package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Bridge 실패 종류. errors.Is(err, ErrUpstream) 처럼 비교한다.
var (
	ErrConfiguration    = errors.New("configuration_error")
	ErrMalformedRequest = errors.New("malformed_request")
	ErrUpstream         = errors.New("upstream_error")
	ErrRateLimited      = errors.New("rate_limited")
)

const (
	msgConfiguration    = "API key not configured"
	msgMalformedRequest = "Invalid request body"
	msgUpstream         = "Error processing your request"
	msgRateLimited      = "Too many requests, please try again later"
)

// BridgeError 는 Bridge 경계에서 응답 envelope 으로 변환되는 에러다.
// Message 는 사용자에게 보여도 되는 고정 문구, Details 는 원인 메시지(선택)다.
type BridgeError struct {
	Kind       error
	StatusCode int
	Message    string
	Details    string
	Cause      error
}

func (e *BridgeError) Error() string {
	if e == nil {
		return ErrUpstream.Error()
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BridgeError) Unwrap() error { return e.Cause }

func (e *BridgeError) Is(target error) bool { return e != nil && target == e.Kind }

// Code is the machine-readable error kind sent to clients.
func (e *BridgeError) Code() string { return e.Kind.Error() }

func NewMalformedRequestError(details string, cause error) *BridgeError {
	return &BridgeError{
		Kind:       ErrMalformedRequest,
		StatusCode: http.StatusBadRequest,
		Message:    msgMalformedRequest,
		Details:    details,
		Cause:      cause,
	}
}

func newConfigurationError() *BridgeError {
	return &BridgeError{
		Kind:       ErrConfiguration,
		StatusCode: http.StatusInternalServerError,
		Message:    msgConfiguration,
	}
}

func newUpstreamError(details string, cause error) *BridgeError {
	return &BridgeError{
		Kind:       ErrUpstream,
		StatusCode: http.StatusInternalServerError,
		Message:    msgUpstream,
		Details:    details,
		Cause:      cause,
	}
}

func newRateLimitedError() *BridgeError {
	return &BridgeError{
		Kind:       ErrRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Message:    msgRateLimited,
	}
}

// AsBridgeError converts any error into a BridgeError, treating unknown errors as upstream failures.
func AsBridgeError(err error) *BridgeError {
	var be *BridgeError
	if errors.As(err, &be) {
		return be
	}
	return newUpstreamError(err.Error(), err)
}
