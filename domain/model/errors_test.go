package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "validation", err: &ValidationError{Key: "group", Reason: "required"}, want: ErrorKindValidation},
		{name: "wrapped api", err: fmt.Errorf("create: %w", &APIError{StatusCode: 409, Message: "exists"}), want: ErrorKindAPI},
		{name: "transport", err: &TransportError{Op: "POST /api/projects", Err: context.DeadlineExceeded}, want: ErrorKindTransport},
		{name: "manifest", err: &ManifestError{Path: "manifest.json", Err: errors.New("bad type")}, want: ErrorKindManifest},
		{name: "invalid project", err: fmt.Errorf("build: %w", ErrProjectInvalid), want: ErrorKindValidation},
		{name: "group not found", err: fmt.Errorf("%w: alpha", ErrGroupNotFound), want: ErrorKindAPI},
		{name: "storage failure", err: errors.New("database is locked"), want: ErrorKindTransport},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrorKindTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	conflict := fmt.Errorf("wrapped: %w", &APIError{StatusCode: http.StatusConflict, Message: "duplicate"})
	if !errors.Is(conflict, ErrAlreadyExists) {
		t.Errorf("409 should match ErrAlreadyExists")
	}
	if errors.Is(conflict, ErrProjectNotFound) {
		t.Errorf("409 should not match ErrProjectNotFound")
	}
	notFound := &APIError{StatusCode: http.StatusNotFound, Message: "missing"}
	if !errors.Is(notFound, ErrGroupNotFound) || !errors.Is(notFound, ErrProjectNotFound) {
		t.Errorf("404 should match not found sentinels")
	}
}

func TestResultFail(t *testing.T) {
	r := &Result{Status: ResultSuccess, Project: &FlywheelProject{ID: "p1"}}
	r.Fail(&APIError{StatusCode: 403, Message: "permission denied"})
	if r.Succeeded() {
		t.Fatalf("expected failed result")
	}
	if r.Project != nil {
		t.Errorf("project should be cleared on failure")
	}
	if r.Error.Kind != ErrorKindAPI || r.Error.StatusCode != 403 {
		t.Errorf("unexpected error descriptor: %+v", r.Error)
	}

	r = &Result{}
	r.Fail(&ValidationError{Key: "project_label", Reason: "required key missing"})
	if r.Error.Key != "project_label" || r.Error.Kind != ErrorKindValidation {
		t.Errorf("unexpected error descriptor: %+v", r.Error)
	}
}
