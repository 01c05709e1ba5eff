package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupInvalid    = errors.New("group invalid")
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectInvalid  = errors.New("project invalid")
	ErrAlreadyExists   = errors.New("already exists")
)

// ErrorKind classifies a failure for the Result artifact.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "ValidationError"
	ErrorKindAPI        ErrorKind = "ApiError"
	ErrorKindTransport  ErrorKind = "TransportError"
	ErrorKindManifest   ErrorKind = "ManifestError"
)

// ValidationError reports input configuration that does not satisfy the manifest.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %q: %s", e.Key, e.Reason)
}

// APIError is a rejection returned by the management system.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flywheel API error (status %d): %s", e.StatusCode, e.Message)
}

// Is maps well known status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAlreadyExists:
		return e.StatusCode == http.StatusConflict
	case ErrProjectNotFound, ErrGroupNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// TransportError reports a request that could not complete.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ManifestError reports a malformed gear manifest.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid manifest: %v", e.Err)
	}
	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// KindOf returns the error kind of err. The invalid sentinels classify as
// ValidationError and the not found and already exists sentinels as
// ApiError. Anything else failed while talking to the backend and is a
// TransportError.
func KindOf(err error) ErrorKind {
	var (
		ve *ValidationError
		ae *APIError
		te *TransportError
		me *ManifestError
	)
	switch {
	case errors.As(err, &me):
		return ErrorKindManifest
	case errors.As(err, &ve):
		return ErrorKindValidation
	case errors.As(err, &ae):
		return ErrorKindAPI
	case errors.As(err, &te):
		return ErrorKindTransport
	case errors.Is(err, ErrGroupInvalid), errors.Is(err, ErrProjectInvalid):
		return ErrorKindValidation
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrProjectNotFound), errors.Is(err, ErrAlreadyExists):
		return ErrorKindAPI
	}
	return ErrorKindTransport
}
