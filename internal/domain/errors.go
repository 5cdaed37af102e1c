package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrUnauthorized indicates the backend rejected the credential (HTTP 401)
	ErrUnauthorized = errors.New("not authorized")

	// ErrNoCredential indicates an authenticated call was attempted without a
	// stored token. It is an authorization failure: errors.Is matches it
	// against ErrUnauthorized as well.
	ErrNoCredential error = noCredentialError{}

	// ErrSuperseded indicates a newer auth operation (e.g. logout) replaced this one
	ErrSuperseded = errors.New("superseded by a newer session operation")

	// ErrAuthenticatedMode indicates a local favorite toggle was attempted while logged in
	ErrAuthenticatedMode = errors.New("local favorites are unavailable while logged in")
)

type noCredentialError struct{}

func (noCredentialError) Error() string { return "no stored credential" }

func (noCredentialError) Is(target error) bool { return target == ErrUnauthorized }

// TransportError is a network-level failure (unreachable, timeout)
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "server is unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response
type StatusError struct {
	Code    int
	Message string // Server-provided message, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with code %d", e.Code)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 response
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// DecodeError is a malformed or unexpected response body
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "unexpected response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is a client-side form rule violation. Never sent to the server.
type ValidationError struct {
	Fields map[string]string // field name -> message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// OpError wraps a failure at a gateway boundary with the operation name
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// Message converts any error into a short string fit for display
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		opErr     *OpError
		status    *StatusError
		transport *TransportError
		decode    *DecodeError
		invalid   *ValidationError
	)
	switch {
	case errors.As(err, &opErr):
		return opErr.Op + " failed: " + Message(opErr.Err)
	case errors.Is(err, ErrNoCredential):
		return "please log in first"
	case errors.As(err, &status):
		return status.Error()
	case errors.As(err, &transport):
		return "could not reach the server"
	case errors.As(err, &decode):
		return "the server sent an unexpected response"
	case errors.As(err, &invalid):
		return invalid.Error()
	default:
		return err.Error()
	}
}
