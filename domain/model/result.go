package model

import (
	"errors"
	"time"
)

// ResultStatus is the coarse outcome recorded in a Result.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// ContainerStatus tells what a run did with one container.
type ContainerStatus string

const (
	ContainerCreated ContainerStatus = "created"
	ContainerExists  ContainerStatus = "exists"
	ContainerPlanned ContainerStatus = "planned"
)

// ContainerKind is either "group" or "project".
type ContainerKind string

const (
	ContainerGroup   ContainerKind = "group"
	ContainerProject ContainerKind = "project"
)

// Container is one group or project touched by a provisioning run.
type Container struct {
	Kind   ContainerKind   `json:"kind"`
	Path   string          `json:"path"`
	Label  string          `json:"label"`
	ID     string          `json:"id,omitempty"`
	Status ContainerStatus `json:"status"`
}

// ErrorDescriptor is the error half of a Result.
type ErrorDescriptor struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Key        string    `json:"key,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
}

// Result is the single artifact produced per invocation.
type Result struct {
	RunID      string           `json:"run_id"`
	Status     ResultStatus     `json:"status"`
	Mode       string           `json:"mode"`
	DryRun     bool             `json:"dry_run,omitempty"`
	Project    *FlywheelProject `json:"project,omitempty"`
	Containers []Container      `json:"containers,omitempty"`
	Error      *ErrorDescriptor `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// Succeeded reports whether the result is a success descriptor.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == ResultSuccess && r.Error == nil
}

// Fail turns r into an error descriptor for err.
func (r *Result) Fail(err error) {
	d := &ErrorDescriptor{Kind: KindOf(err), Message: err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		d.Key = ve.Key
	}
	var ae *APIError
	if errors.As(err, &ae) {
		d.StatusCode = ae.StatusCode
	}
	r.Status = ResultError
	r.Project = nil
	r.Error = d
}
